// Package contextkeys provides centralized context key definitions
//
// IMPORTANT: All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
package contextkeys

import (
	"context"

	"github.com/easiio/sflow-server/pkg/auth"
)

// Key is the type for context keys to prevent collisions
type Key string

const (
	// UserKey contains the authenticated *auth.User
	// Set by: middleware.Session (pkg/middleware/session.go)
	// Required by: all cookie-protected endpoints
	UserKey Key = "authenticated_user"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware (pkg/httputil/middleware.go)
	RequestIDKey Key = "request_id"
)

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFrom extracts the authenticated user from the context, or nil.
func UserFrom(ctx context.Context) *auth.User {
	if user, ok := ctx.Value(UserKey).(*auth.User); ok {
		return user
	}
	return nil
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID extracts the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
