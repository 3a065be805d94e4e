package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued session token stays valid.
const TokenLifetime = 7 * 24 * time.Hour

// UserLoader reloads a user (with global role) by id. Implementations
// return ErrUserNotFound when the id does not exist.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// TokenCodec issues and resolves signed session tokens. Tokens are HS256
// JWTs carrying only the subject user id and the issue/expiry timestamps;
// no session state is kept server-side.
type TokenCodec struct {
	secret []byte
	users  UserLoader
}

// NewTokenCodec creates a codec signing with the given secret. An empty
// secret is a configuration error, not a per-request condition.
func NewTokenCodec(secret string, users UserLoader) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is not configured")
	}
	return &TokenCodec{secret: []byte(secret), users: users}, nil
}

// Issue creates a signed token for the user, expiring TokenLifetime from
// now.
func (c *TokenCodec) Issue(user *User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign session token: %w", err)
	}
	return token, nil
}

// Resolve verifies a token and reloads its subject user. It fails with
// ErrInvalidToken on a format or signature problem, ErrTokenExpired when
// the expiry has elapsed, and ErrUserNotFound when the subject id no
// longer exists. Any other error is an infrastructure failure from the
// user store.
func (c *TokenCodec) Resolve(ctx context.Context, token string) (*User, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := c.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: failed to load token subject: %w", err)
	}
	return user, nil
}
