package db

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteClient manages the connection to SQLite.
type SQLiteClient struct {
	*sqlClient
}

// NewSQLiteClient creates a new SQLite client.
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	c, err := newSQLClient(ctx, "sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteClient{sqlClient: c}, nil
}
