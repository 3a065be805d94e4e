// Package storage provides the PostgreSQL persistence layer for user
// records. Every lookup loads the user's global role eagerly, since the
// auth surface requires the relation to be present on each returned user.
package storage
