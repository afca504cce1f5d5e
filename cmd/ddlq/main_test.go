package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	const ddl = "CREATE TABLE t (id INT);"
	if err := os.WriteFile(path, []byte(ddl), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	got, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != ddl {
		t.Errorf("readInput = %q, want %q", got, ddl)
	}
}

func TestReadInputMissingFile(t *testing.T) {
	if _, err := readInput(filepath.Join(t.TempDir(), "nope.sql")); err == nil {
		t.Error("expected error for missing file")
	}
}
