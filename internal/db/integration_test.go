//go:build integration

package db

import (
	"context"
	"testing"

	"github.com/nordql/ddlq"
	"github.com/nordql/ddlq/schema"
)

// Exercises the full pipeline against a real SQLite database: apply DDL,
// insert rows, run a built SELECT, read the rows back by name.
//
// Run with: go test -tags integration ./internal/db
func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()

	client, err := Open(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := client.Close(ctx); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	}()

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INT)`,
		`INSERT INTO users (id, name, age) VALUES (1, 'alice', 30)`,
		`INSERT INTO users (id, name, age) VALUES (2, 'bob', NULL)`,
	}
	for _, stmt := range stmts {
		if err := client.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to execute %q: %v", stmt, err)
		}
	}

	users := ddlq.Tbl("users")
	id := users.Col("id", schema.Int64)
	name := users.Col("name", schema.String)
	sql, err := ddlq.NewSelect().
		WithDialect("sqlite").
		WithColumns(id, name, users.Col("age", schema.Int64)).
		WithTable(users).
		WithWhereCond(name.In("alice", "bob")).
		WithOrder(id.Asc()).
		Build()
	if err != nil {
		t.Fatalf("failed to build query: %v", err)
	}

	rows, err := client.Query(ctx, sql)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if rows.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", rows.Len())
	}

	if !rows.Next() {
		t.Fatal("expected a first row")
	}
	if got, err := rows.String("name"); err != nil || got != "alice" {
		t.Errorf("name = %q, %v", got, err)
	}
	if got, err := rows.Int64("age"); err != nil || got != 30 {
		t.Errorf("age = %d, %v", got, err)
	}

	if !rows.Next() {
		t.Fatal("expected a second row")
	}
	if null, err := rows.IsNull("age"); err != nil || !null {
		t.Errorf("IsNull(age) = %v, %v", null, err)
	}
}
