// Package format renders a parsed schema for humans: a compact text layout
// and a markdown layout.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/nordql/ddlq/schema"
)

// TextFormatter formats a schema as compact text.
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the schema in compact text format.
func (f *TextFormatter) Format(s *schema.Schema) error {
	for i, table := range s.Tables() {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		if err := f.formatTable(&table); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(table *schema.Table) error {
	pkStr := ""
	if len(table.PrimaryKey) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(table.PrimaryKey, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s\n", table.Name, pkStr)

	for _, col := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", formatColumn(col))
	}

	if len(table.ForeignKeys) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  FOREIGN KEYS:")
		for _, fk := range table.ForeignKeys {
			_, _ = fmt.Fprintf(f.writer, "    (%s) → %s (%s) ON DELETE %s\n",
				strings.Join(fk.Columns, ", "),
				fk.RefTable,
				strings.Join(fk.RefColumns, ", "),
				fk.OnDelete)
		}
	}
	return nil
}

func formatColumn(col schema.Column) string {
	parts := []string{col.Name + ":", fmt.Sprintf("%s [%s]", col.RawType, col.Type)}

	if col.Unique {
		parts = append(parts, "UNIQUE")
	}
	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.Default != nil {
		parts = append(parts, fmt.Sprintf("DEFAULT %s", *col.Default))
	}
	return strings.Join(parts, " ")
}
