package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easiio/sflow-server/pkg/auth"
)

type stubLoader struct {
	users map[string]*auth.User
}

func (s *stubLoader) GetByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, auth.ErrUserNotFound
}

func TestSession_ValidCookie(t *testing.T) {
	user := &auth.User{ID: "u-1", GlobalRole: &auth.Role{Name: "owner", Scope: "global"}}
	codec, err := auth.NewTokenCodec("test-secret", &stubLoader{users: map[string]*auth.User{"u-1": user}})
	require.NoError(t, err)

	token, err := codec.Issue(user)
	require.NoError(t, err)

	session := NewSession(codec)
	var got *auth.User
	handler := session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFrom(r)
	}))

	req := httptest.NewRequest("GET", "/rest/workflows", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.ID)
}

func TestSession_Rejections(t *testing.T) {
	user := &auth.User{ID: "u-1"}
	codec, err := auth.NewTokenCodec("test-secret", &stubLoader{users: map[string]*auth.User{"u-1": user}})
	require.NoError(t, err)

	otherCodec, err := auth.NewTokenCodec("other-secret", &stubLoader{users: map[string]*auth.User{"u-1": user}})
	require.NoError(t, err)
	tampered, err := otherCodec.Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty cookie", &http.Cookie{Name: SessionCookieName, Value: ""}},
		{"garbage token", &http.Cookie{Name: SessionCookieName, Value: "garbage"}},
		{"token signed with another secret", &http.Cookie{Name: SessionCookieName, Value: tampered}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(codec)
			reached := false
			handler := session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			}))

			req := httptest.NewRequest("GET", "/rest/workflows", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Not logged in")
		})
	}
}
