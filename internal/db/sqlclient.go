package db

import (
	"context"
	"database/sql"
	"fmt"
)

// sqlClient adapts a database/sql connection to the Client interface. MySQL
// and SQLite share it; only the driver name and connection string differ.
type sqlClient struct {
	db *sql.DB
}

func newSQLClient(ctx context.Context, driver, connString string) (*sqlClient, error) {
	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &sqlClient{db: db}, nil
}

// Exec runs a statement that returns no rows.
func (c *sqlClient) Exec(ctx context.Context, query string) error {
	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Query runs a SELECT and materializes the result set.
func (c *sqlClient) Query(ctx context.Context, query string) (*Rows, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result set: %w", err)
	}
	return newRows(names, data), nil
}

// Close closes the database connection.
func (c *sqlClient) Close(context.Context) error {
	return c.db.Close()
}
