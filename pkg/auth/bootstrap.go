package auth

import (
	"context"
	"errors"
	"fmt"
)

// Settings exposes the dynamic configuration values the auth surface
// consults. Reads must reflect the current value on every call so an
// external reload takes effect on the next request.
type Settings interface {
	// IsOwnerSetUp reports whether the instance owner account has been
	// claimed.
	IsOwnerSetUp() bool
	// SflowAPIKey returns the configured machine API key, or "" when none
	// is provisioned.
	SflowAPIKey() string
}

// UserFinder locates the earliest user row. Implementations return
// ErrNoUsers when the table is empty.
type UserFinder interface {
	FindEarliest(ctx context.Context) (*User, error)
}

// BootstrapDetector answers whether an instance is still in its first-run
// state and, if so, locates the unclaimed placeholder owner.
type BootstrapDetector struct {
	settings Settings
	users    UserFinder
}

// NewBootstrapDetector creates a detector over the given settings and
// user store.
func NewBootstrapDetector(settings Settings, users UserFinder) *BootstrapDetector {
	return &BootstrapDetector{settings: settings, users: users}
}

// IsOwnerSetUp is a fresh read of the owner-configured flag.
func (d *BootstrapDetector) IsOwnerSetUp() bool {
	return d.settings.IsOwnerSetUp()
}

// FindOwnerlessUser returns the placeholder owner row. It fails with
// ErrNoUsers when the table is empty and ErrInvalidBootstrapState when
// the earliest row already has an email or password set, which means the
// owner flag should have been flipped and the database is corrupted.
func (d *BootstrapDetector) FindOwnerlessUser(ctx context.Context) (*User, error) {
	user, err := d.users.FindEarliest(ctx)
	if err != nil {
		if errors.Is(err, ErrNoUsers) {
			return nil, ErrNoUsers
		}
		return nil, fmt.Errorf("auth: failed to look up owner placeholder: %w", err)
	}
	if user.HasEmail() || user.HasPassword() {
		return nil, ErrInvalidBootstrapState
	}
	return user, nil
}
