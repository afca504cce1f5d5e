// Package ddlq turns CREATE TABLE DDL into a typed, queryable schema model
// and builds SELECT statements over it with compile-checked column
// references.
//
// The package has two halves. Parsing consumes a batch of semicolon-
// terminated CREATE TABLE statements for a chosen dialect and produces an
// immutable schema (tables, typed columns, primary keys, foreign-key
// relations):
//
//	s, err := ddlq.Parse(ddl, &ddlq.Options{Dialect: "postgres"})
//
// Query building renders SELECT statements from typed column references,
// either fluently:
//
//	sql, err := ddlq.NewSelect().
//		WithColumn(name).
//		WithTable(user).
//		WithWhereCond(active.Eq(true)).
//		Build()
//
// or imperatively, with identical output:
//
//	sel := ddlq.NewSelect()
//	sel.PushColumn(name)
//	sel.SetTable(user)
//	sel.PushWhereCond(active.Eq(true))
//	sql, err := sel.Build()
//
// Build returns a plain SQL string; executing it and decoding rows is the
// caller's job, typically via the driver adapters in internal/db or any
// database/sql-compatible driver.
//
// # Dialects
//
// Supported dialects are postgres, mysql, and sqlite. The dialect selects
// the reserved-word set, identifier quoting (double quotes vs backticks),
// and the raw-type vocabulary mapped to semantic types.
//
// # Errors
//
// Parsing fails fast: the first malformed token (LexError), structural
// violation (ParseError), unmapped column type (UnknownTypeError), or
// cross-table inconsistency (SchemaError) aborts the whole batch and no
// partial schema is returned. Query building reports violated invariants
// (BuildError) and kind-mismatched comparisons (TypeMismatchError) from
// Build.
package ddlq

import (
	"fmt"
	"io"
	"os"

	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/internal/format"
	"github.com/nordql/ddlq/internal/parser"
	"github.com/nordql/ddlq/schema"
)

// Options configures DDL parsing.
type Options struct {
	// Dialect selects the SQL dialect: "postgres" (default), "mysql", or
	// "sqlite".
	Dialect string
}

// OutputOptions configures schema output formatting.
type OutputOptions struct {
	// Writer receives the formatted schema. Defaults to os.Stdout.
	Writer io.Writer

	// Format is "text" (default) or "markdown".
	Format string
}

// Parse parses a DDL batch into a validated schema. The batch is one or
// more semicolon-terminated CREATE TABLE statements. The returned schema is
// immutable and safe for concurrent readers.
func Parse(ddl string, opts *Options) (*schema.Schema, error) {
	rules, err := dialectRules(opts)
	if err != nil {
		return nil, err
	}
	return parser.Parse(ddl, rules)
}

// Format writes a parsed schema to the configured output.
func Format(s *schema.Schema, opts *OutputOptions) error {
	var writer io.Writer = os.Stdout
	formatName := "text"
	if opts != nil {
		if opts.Writer != nil {
			writer = opts.Writer
		}
		if opts.Format != "" {
			formatName = opts.Format
		}
	}

	switch formatName {
	case "text":
		return format.NewTextFormatter(writer).Format(s)
	case "markdown":
		return format.NewMarkdownFormatter(writer).Format(s)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", formatName)
	}
}

// ParseAndFormat parses a DDL batch and writes the formatted schema in one
// call.
func ParseAndFormat(ddl string, opts *Options, output *OutputOptions) error {
	s, err := Parse(ddl, opts)
	if err != nil {
		return err
	}
	return Format(s, output)
}

func dialectRules(opts *Options) (*dialect.Rules, error) {
	name := "postgres"
	if opts != nil && opts.Dialect != "" {
		name = opts.Dialect
	}
	return dialect.Lookup(name)
}
