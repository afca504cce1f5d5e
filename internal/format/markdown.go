package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/nordql/ddlq/schema"
)

// MarkdownFormatter formats a schema as markdown.
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter.
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the schema in markdown format.
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Schema")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range s.Tables() {
		if err := f.formatTable(&table); err != nil {
			return err
		}
	}
	return nil
}

func (f *MarkdownFormatter) formatTable(table *schema.Table) error {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)
	for _, col := range table.Columns {
		typeStr := fmt.Sprintf("%s [%s]", col.RawType, col.Type)
		constraintStr := formatConstraints(col, table.PrimaryKey)
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name, typeStr, constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, typeStr)
		}
	}
	_, _ = fmt.Fprintln(f.writer)

	if len(table.ForeignKeys) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### References")
		_, _ = fmt.Fprintln(f.writer)
		for _, fk := range table.ForeignKeys {
			_, _ = fmt.Fprintf(f.writer, "- (%s) → %s (%s), ON DELETE %s\n",
				strings.Join(fk.Columns, ", "),
				fk.RefTable,
				strings.Join(fk.RefColumns, ", "),
				fk.OnDelete)
		}
		_, _ = fmt.Fprintln(f.writer)
	}
	return nil
}

func formatConstraints(col schema.Column, primaryKey []string) string {
	var constraints []string

	for _, pk := range primaryKey {
		if pk == col.Name {
			constraints = append(constraints, "PK")
			break
		}
	}
	if col.Unique {
		constraints = append(constraints, "UNIQUE")
	}
	if !col.Nullable {
		constraints = append(constraints, "NOT NULL")
	}
	if col.Default != nil {
		constraints = append(constraints, "DEFAULT "+*col.Default)
	}
	return strings.Join(constraints, ", ")
}
