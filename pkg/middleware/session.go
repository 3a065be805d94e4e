package middleware

import (
	"net/http"

	"github.com/easiio/sflow-server/pkg/auth"
	"github.com/easiio/sflow-server/pkg/contextkeys"
	"github.com/easiio/sflow-server/pkg/httputil"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "sflow-auth"

// Session guards cookie-protected routes. It resolves the session cookie
// into a user and places it in the request context; requests without a
// valid cookie are rejected with 401.
type Session struct {
	codec *auth.TokenCodec
}

// NewSession creates session middleware over a token codec.
func NewSession(codec *auth.TokenCodec) *Session {
	return &Session{codec: codec}
}

// Handler wraps an HTTP handler with cookie authentication.
func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			httputil.WriteUnauthorized(w, "Not logged in")
			return
		}

		user, err := s.codec.Resolve(r.Context(), cookie.Value)
		if err != nil {
			httputil.WriteUnauthorized(w, "Not logged in")
			return
		}

		ctx := contextkeys.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom extracts the authenticated user from a request, or nil.
func UserFrom(r *http.Request) *auth.User {
	return contextkeys.UserFrom(r.Context())
}
