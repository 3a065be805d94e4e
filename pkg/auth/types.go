package auth

import "time"

// User represents a user account row. Email and Password are pointers
// because both are NULL for exactly one row on a fresh install: the
// placeholder owner that has not been claimed yet.
type User struct {
	ID         string    `json:"id"`
	Email      *string   `json:"email,omitempty"`
	FirstName  *string   `json:"firstName,omitempty"`
	LastName   *string   `json:"lastName,omitempty"`
	Password   *string   `json:"-"` // bcrypt hash, never serialized
	GlobalRole *Role     `json:"globalRole,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Role represents a global role record attached to every user.
// Only its presence is consulted here; enforcement lives elsewhere.
type Role struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Scope string `json:"scope"`
}

// PublicUser is the client-safe representation of a User.
type PublicUser struct {
	ID         string    `json:"id"`
	Email      *string   `json:"email,omitempty"`
	FirstName  *string   `json:"firstName,omitempty"`
	LastName   *string   `json:"lastName,omitempty"`
	GlobalRole *Role     `json:"globalRole,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Sanitize strips sensitive fields before a user is returned to a client.
func (u *User) Sanitize() *PublicUser {
	return &PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		GlobalRole: u.GlobalRole,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// PasswordHash returns the stored bcrypt hash, or "" when none is set.
func (u *User) PasswordHash() string {
	if u.Password == nil {
		return ""
	}
	return *u.Password
}

// HasEmail reports whether a non-empty email is set.
func (u *User) HasEmail() bool {
	return u.Email != nil && *u.Email != ""
}

// HasPassword reports whether a password hash is set.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
