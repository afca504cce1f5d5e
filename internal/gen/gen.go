// Package gen emits Go source from a parsed schema: one struct per table
// plus typed column references usable with the query builder. It is a
// separate, swappable stage driven only by the schema's public read
// interface; it knows nothing about parsing.
package gen

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nordql/ddlq/schema"
)

// Generate writes a single Go source file declaring, for every table in the
// schema, a row struct and a var block of typed column references.
func Generate(w io.Writer, s *schema.Schema, pkg string) error {
	if pkg == "" {
		pkg = "models"
	}

	_, _ = fmt.Fprintln(w, "// Code generated by ddlq. DO NOT EDIT.")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "package %s\n\n", pkg)

	_, _ = fmt.Fprintln(w, "import (")
	if needsTime(s) {
		_, _ = fmt.Fprintln(w, "\t\"time\"")
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w, "\t\"github.com/nordql/ddlq\"")
	_, _ = fmt.Fprintln(w, "\t\"github.com/nordql/ddlq/schema\"")
	_, _ = fmt.Fprintln(w, ")")

	for _, table := range s.Tables() {
		_, _ = fmt.Fprintln(w)
		if err := generateTable(w, &table); err != nil {
			return fmt.Errorf("failed to generate table %s: %w", table.Name, err)
		}
	}
	return nil
}

func generateTable(w io.Writer, table *schema.Table) error {
	typeName := exportName(table.Name)

	// Row struct. Nullable columns become pointers so NULL round-trips.
	_, _ = fmt.Fprintf(w, "// %s is a row of table %q.\n", typeName, table.Name)
	_, _ = fmt.Fprintf(w, "type %s struct {\n", typeName)
	for _, col := range table.Columns {
		goType, err := goTypeFor(col)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "\t%s %s `db:%q`\n", exportName(col.Name), goType, col.Name)
	}
	_, _ = fmt.Fprintln(w, "}")
	_, _ = fmt.Fprintln(w)

	// Table and column references for the query builder.
	_, _ = fmt.Fprintf(w, "// Typed references to table %q and its columns.\n", table.Name)
	_, _ = fmt.Fprintln(w, "var (")
	_, _ = fmt.Fprintf(w, "\t%sTable = ddlq.Tbl(%q)\n", typeName, table.Name)
	for _, col := range table.Columns {
		ref := fmt.Sprintf("%sTable.Col(%q, schema.%s)", typeName, col.Name, typeConst(col.Type))
		if isPrimary(table, col.Name) {
			ref += ".Key()"
		}
		_, _ = fmt.Fprintf(w, "\t%s%s = %s\n", typeName, exportName(col.Name), ref)
	}
	_, _ = fmt.Fprintln(w, ")")
	return nil
}

func isPrimary(table *schema.Table, col string) bool {
	for _, pk := range table.PrimaryKey {
		if pk == col {
			return true
		}
	}
	return false
}

func needsTime(s *schema.Schema) bool {
	for _, table := range s.Tables() {
		for _, col := range table.Columns {
			if col.Type.Kind == schema.Date || col.Type.Kind == schema.DateTime {
				return true
			}
		}
	}
	return false
}

func goTypeFor(col schema.Column) (string, error) {
	var base string
	switch col.Type.Kind {
	case schema.Integer:
		switch col.Type.Width {
		case 8:
			base = "int8"
		case 16:
			base = "int16"
		case 32:
			base = "int32"
		case 64:
			base = "int64"
		default:
			return "", fmt.Errorf("unsupported integer width %d", col.Type.Width)
		}
	case schema.Float:
		base = "float64"
	case schema.Text:
		base = "string"
	case schema.Date, schema.DateTime:
		base = "time.Time"
	case schema.Boolean:
		base = "bool"
	default:
		return "", fmt.Errorf("column %q has unresolved type", col.Name)
	}
	if col.Nullable {
		return "*" + base, nil
	}
	return base, nil
}

func typeConst(t schema.Type) string {
	switch t.Kind {
	case schema.Integer:
		return fmt.Sprintf("Int%d", t.Width)
	case schema.Float:
		return "Float64"
	case schema.Text:
		return "String"
	case schema.Date:
		return "DateOnly"
	case schema.DateTime:
		return "Datetime"
	case schema.Boolean:
		return "Bool"
	default:
		return "Type{}"
	}
}

// exportName converts a SQL identifier to an exported Go name:
// order_detail → OrderDetail, userValue1 → UserValue1, id → ID.
func exportName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if upper := strings.ToUpper(part); upper == "ID" {
			b.WriteString("ID")
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}
