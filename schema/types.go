// Package schema holds the normalized representation of a parsed DDL batch:
// tables, typed columns, primary keys, and foreign-key relations.
//
// A Schema is assembled once per batch and is immutable afterwards, so it can
// be shared read-only across goroutines without synchronization.
package schema

import "fmt"

// Kind is the normalized type category of a column, independent of the
// DBMS-specific type name.
type Kind int

const (
	// Unknown is the zero value. The type mapper never produces it; an
	// unmapped raw type is a hard error instead.
	Unknown Kind = iota
	Integer
	Float
	Text
	Date
	DateTime
	Boolean
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Text:
		return "TEXT"
	case Date:
		return "DATE"
	case DateTime:
		return "DATETIME"
	case Boolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// Type is the semantic type of a column. Width is the bit width for Integer
// kinds (8, 16, 32, or 64) and zero otherwise.
type Type struct {
	Kind  Kind
	Width int
}

// Semantic types produced by the dialect type maps.
var (
	Int8     = Type{Kind: Integer, Width: 8}
	Int16    = Type{Kind: Integer, Width: 16}
	Int32    = Type{Kind: Integer, Width: 32}
	Int64    = Type{Kind: Integer, Width: 64}
	Float64  = Type{Kind: Float}
	String   = Type{Kind: Text}
	DateOnly = Type{Kind: Date}
	Datetime = Type{Kind: DateTime}
	Bool     = Type{Kind: Boolean}
)

// String returns a compact description such as "INTEGER(32)" or "TEXT".
func (t Type) String() string {
	if t.Kind == Integer {
		return fmt.Sprintf("INTEGER(%d)", t.Width)
	}
	return t.Kind.String()
}

// CascadeAction is the ON DELETE behavior attached to a foreign key.
type CascadeAction int

const (
	NoAction CascadeAction = iota
	Cascade
	SetNull
	Restrict
)

// String returns the SQL spelling of the action.
func (a CascadeAction) String() string {
	switch a {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case Restrict:
		return "RESTRICT"
	default:
		return "NO ACTION"
	}
}

// Column represents a table column.
type Column struct {
	Name     string
	RawType  string // type as written in the DDL, e.g. "VARCHAR(10)"
	Type     Type
	Nullable bool
	Unique   bool
	Default  *string // raw default literal, nil if absent
}

// ForeignKey represents a foreign-key relation to another table.
// Columns and RefColumns always have equal length.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   CascadeAction
}

// Table represents a parsed CREATE TABLE definition.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Schema is the normalized, validated result of parsing a DDL batch.
type Schema struct {
	tables []Table
	byName map[string]int
}

// Tables returns all tables in declaration order. The returned slice is
// shared; callers must not modify it.
func (s *Schema) Tables() []Table {
	return s.tables
}

// Table returns a copy of the table with the given name. The slices inside
// the copy are shared with the schema; callers must not modify them.
func (s *Schema) Table(name string) (Table, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Table{}, false
	}
	return s.tables[i], true
}
