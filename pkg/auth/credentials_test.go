package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	tests := []struct {
		name       string
		plain      string
		storedHash string
		want       bool
	}{
		{
			name:       "matching password",
			plain:      "correct horse battery staple",
			storedHash: hash,
			want:       true,
		},
		{
			name:       "wrong password",
			plain:      "incorrect horse",
			storedHash: hash,
			want:       false,
		},
		{
			name:       "no stored hash never matches",
			plain:      "anything",
			storedHash: "",
			want:       false,
		},
		{
			name:       "empty password against real hash",
			plain:      "",
			storedHash: hash,
			want:       false,
		},
		{
			name:       "garbage hash",
			plain:      "anything",
			storedHash: "not-a-bcrypt-hash",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.plain, tt.storedHash))
		})
	}
}

func TestVerifyAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		presented  string
		configured string
		want       bool
	}{
		{"matching key", "sflow-key-123", "sflow-key-123", true},
		{"wrong key", "wrong", "sflow-key-123", false},
		{"empty configured key never matches", "", "", false},
		{"empty presented key against configured", "", "sflow-key-123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyAPIKey(tt.presented, tt.configured))
		})
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, VerifyPassword("s3cret", hash))
}
