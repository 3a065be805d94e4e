package auth

import "errors"

// Sentinel errors returned by the token codec and bootstrap detector.
// Callers that clear the session cookie treat the first three identically;
// the distinction only matters for logs.
var (
	// ErrInvalidToken means the token was malformed or its signature did
	// not verify.
	ErrInvalidToken = errors.New("auth: invalid session token")

	// ErrTokenExpired means the token verified but its expiry has elapsed.
	ErrTokenExpired = errors.New("auth: session token expired")

	// ErrUserNotFound means the token referenced a user id that no longer
	// exists.
	ErrUserNotFound = errors.New("auth: token subject no longer exists")

	// ErrNoUsers means the users table is empty. A running install always
	// has at least the placeholder owner row, so this signals a wiped or
	// corrupted database.
	ErrNoUsers = errors.New("auth: no users found")

	// ErrInvalidBootstrapState means the owner flag is unset but the
	// earliest user row already has an email or password. The state cannot
	// be repaired automatically.
	ErrInvalidBootstrapState = errors.New("auth: invalid bootstrap state")
)
