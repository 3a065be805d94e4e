package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/easiio/sflow-server/pkg/auth"
)

// UserStore is the persistence interface consumed by the auth surface.
type UserStore interface {
	// GetByID loads a user by id. Returns auth.ErrUserNotFound when no
	// row matches.
	GetByID(ctx context.Context, id string) (*auth.User, error)
	// GetByEmail loads a user by email. Returns auth.ErrUserNotFound when
	// no row matches.
	GetByEmail(ctx context.Context, email string) (*auth.User, error)
	// FindEarliest loads the oldest user row. Returns auth.ErrNoUsers
	// when the table is empty.
	FindEarliest(ctx context.Context) (*auth.User, error)
}

const userColumns = `
	u.id, u.email, u.first_name, u.last_name, u.password,
	u.created_at, u.updated_at,
	r.id, r.name, r.scope`

// PostgresUserStore implements UserStore using PostgreSQL.
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore creates a new PostgresUserStore.
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// GetByID retrieves a user and its global role by user id.
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON u.global_role_id = r.id
		WHERE u.id = $1
	`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user and its global role by email.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON u.global_role_id = r.id
		WHERE u.email = $1
	`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// FindEarliest retrieves the oldest user row. On a fresh install this is
// the unclaimed placeholder owner.
func (s *PostgresUserStore) FindEarliest(ctx context.Context) (*auth.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON u.global_role_id = r.id
		ORDER BY u.created_at ASC
		LIMIT 1
	`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, auth.ErrNoUsers
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find earliest user: %w", err)
	}
	return user, nil
}

// scanUser scans one user row plus its joined role.
func (s *PostgresUserStore) scanUser(row *sql.Row) (*auth.User, error) {
	user := &auth.User{}
	role := &auth.Role{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Password,
		&user.CreatedAt, &user.UpdatedAt,
		&role.ID, &role.Name, &role.Scope,
	)
	if err != nil {
		return nil, err
	}
	user.GlobalRole = role
	return user, nil
}
