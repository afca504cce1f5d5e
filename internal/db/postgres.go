package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresClient manages the connection to PostgreSQL.
type PostgresClient struct {
	conn *pgx.Conn
}

// NewPostgresClient creates a new PostgreSQL client.
func NewPostgresClient(ctx context.Context, connString string) (*PostgresClient, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{conn: conn}, nil
}

// Exec runs a statement that returns no rows.
func (c *PostgresClient) Exec(ctx context.Context, sql string) error {
	if _, err := c.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Query runs a SELECT and materializes the result set.
func (c *PostgresClient) Query(ctx context.Context, sql string) (*Rows, error) {
	rows, err := c.conn.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var data [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
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
func (c *PostgresClient) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
