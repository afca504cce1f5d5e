// Package db holds the external driver collaborators: connection clients
// for PostgreSQL, MySQL, and SQLite that execute a built SELECT string
// verbatim and expose rows through a semantic-typed, name-addressed read
// interface. The query-building core never touches a connection; this
// package is where its output crosses into a live database.
package db

import (
	"context"
	"fmt"
	"strings"
)

// Client is a minimal database connection: execute a statement, run a
// query, close.
type Client interface {
	// Exec runs a statement that returns no rows, such as CREATE TABLE.
	Exec(ctx context.Context, sql string) error

	// Query runs a SELECT produced by the builder and materializes the
	// result set.
	Query(ctx context.Context, sql string) (*Rows, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// Open connects to the database identified by the URL scheme:
// postgres:// (or postgresql://), mysql://, and sqlite:// are supported.
func Open(ctx context.Context, url string) (Client, error) {
	switch {
	case strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://"):
		return NewPostgresClient(ctx, url)
	case strings.HasPrefix(url, "mysql://"):
		return NewMySQLClient(ctx, strings.TrimPrefix(url, "mysql://"))
	case strings.HasPrefix(url, "sqlite://"):
		return NewSQLiteClient(ctx, strings.TrimPrefix(url, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database URL %q (must start with postgres://, mysql://, or sqlite://)", url)
	}
}
