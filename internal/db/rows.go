package db

import (
	"fmt"
	"time"
)

// Rows is a materialized result set read column-by-name. It implements the
// row-reading contract of the schema model: fetch a named column's value as
// a given semantic type, with a typed error when the stored value does not
// match the requested type.
//
// Usage mirrors database/sql:
//
//	for rows.Next() {
//		id, err := rows.Int64("id")
//		...
//	}
type Rows struct {
	names []string
	index map[string]int
	data  [][]any
	pos   int
}

func newRows(names []string, data [][]any) *Rows {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return &Rows{names: names, index: index, data: data, pos: -1}
}

// Columns returns the result column names in order.
func (r *Rows) Columns() []string {
	return r.names
}

// Len returns the number of rows.
func (r *Rows) Len() int {
	return len(r.data)
}

// Next advances to the next row. It must be called before the first read.
func (r *Rows) Next() bool {
	r.pos++
	return r.pos < len(r.data)
}

// Get returns the named column's raw driver value for the current row.
func (r *Rows) Get(name string) (any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, fmt.Errorf("no current row (call Next first)")
	}
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("no column %q in result set", name)
	}
	return r.data[r.pos][i], nil
}

// Int64 reads the named column as an integer.
func (r *Rows) Int64(name string) (int64, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int:
		return int64(v), nil
	}
	return 0, convErr(name, v, "integer")
}

// Float64 reads the named column as a float.
func (r *Rows) Float64(name string) (float64, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	return 0, convErr(name, v, "float")
}

// String reads the named column as text.
func (r *Rows) String(name string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", convErr(name, v, "text")
}

// Bool reads the named column as a boolean. Integer 0/1 storage, as used
// by SQLite and MySQL, is accepted.
func (r *Rows) Bool(name string) (bool, error) {
	v, err := r.Get(name)
	if err != nil {
		return false, err
	}
	switch v := v.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	}
	return false, convErr(name, v, "boolean")
}

// Time reads the named column as a date or datetime.
func (r *Rows) Time(name string) (time.Time, error) {
	v, err := r.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, convErr(name, v, "time")
}

// IsNull reports whether the named column is NULL in the current row.
func (r *Rows) IsNull(name string) (bool, error) {
	v, err := r.Get(name)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

func convErr(name string, v any, want string) error {
	return fmt.Errorf("column %q holds %T, not %s", name, v, want)
}
