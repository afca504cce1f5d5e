package schema

import "fmt"

// SchemaError reports a post-parse validation failure, such as an unresolved
// foreign-key reference or a duplicate table name. Syntactic parsing has
// already succeeded when a SchemaError is raised.
type SchemaError struct {
	Table  string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("schema: %s", e.Reason)
	}
	return fmt.Sprintf("schema: table %q: %s", e.Table, e.Reason)
}

// New assembles and validates a schema from parsed table definitions.
// Validation covers the cross-table invariants that the parser cannot check
// statement-by-statement: duplicate table names, primary keys referencing
// undeclared columns, and foreign keys whose referenced table or columns do
// not exist anywhere in the batch. Forward references are legal, so this
// runs only after every table has been parsed.
func New(tables []Table) (*Schema, error) {
	s := &Schema{
		tables: tables,
		byName: make(map[string]int, len(tables)),
	}
	for i, t := range tables {
		if _, ok := s.byName[t.Name]; ok {
			return nil, &SchemaError{Table: t.Name, Reason: "declared more than once"}
		}
		s.byName[t.Name] = i
	}
	for i := range s.tables {
		if err := s.validateTable(&s.tables[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Schema) validateTable(t *Table) error {
	for _, pk := range t.PrimaryKey {
		if _, ok := t.Column(pk); !ok {
			return &SchemaError{
				Table:  t.Name,
				Reason: fmt.Sprintf("primary key references undeclared column %q", pk),
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		if len(fk.Columns) != len(fk.RefColumns) {
			return &SchemaError{
				Table: t.Name,
				Reason: fmt.Sprintf("foreign key has %d local columns but %d referenced columns",
					len(fk.Columns), len(fk.RefColumns)),
			}
		}
		ref, ok := s.Table(fk.RefTable)
		if !ok {
			return &SchemaError{
				Table:  t.Name,
				Reason: fmt.Sprintf("foreign key references unknown table %q", fk.RefTable),
			}
		}
		for _, col := range fk.RefColumns {
			if _, ok := ref.Column(col); !ok {
				return &SchemaError{
					Table:  t.Name,
					Reason: fmt.Sprintf("foreign key references unknown column %q.%q", fk.RefTable, col),
				}
			}
		}
	}
	return nil
}
