package ddlq

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/schema"
)

// TypeMismatchError reports a comparison between a typed column and a value
// (or another column) of an incompatible kind. It is detected when the
// condition is constructed and surfaced by Build.
type TypeMismatchError struct {
	Table      string
	Column     string
	ColumnType schema.Type
	Value      any
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: column %q.%q (%s) compared with %T value %v",
		e.Table, e.Column, e.ColumnType, e.Value, e.Value)
}

// operand is either a column reference or a pre-rendered literal on the
// right-hand side of a predicate.
type operand interface {
	render(r *dialect.Rules) string
}

type litOperand struct {
	sql string
}

func (l litOperand) render(*dialect.Rules) string { return l.sql }

// operandFor converts a Go value into a predicate operand, checking it
// against the column's semantic type. A Column value compares column to
// column; kinds must match, though integer widths may differ (a 32-bit
// foreign key may reference a 64-bit key).
func operandFor(col Column, v any) (operand, error) {
	if other, ok := v.(Column); ok {
		if col.typ.Kind != schema.Unknown && other.typ.Kind != schema.Unknown &&
			col.typ.Kind != other.typ.Kind {
			return nil, &TypeMismatchError{
				Table: col.table, Column: col.name, ColumnType: col.typ,
				Value: fmt.Sprintf("column %s.%s (%s)", other.table, other.name, other.typ),
			}
		}
		return other, nil
	}
	sql, err := renderLiteral(col, v)
	if err != nil {
		return nil, err
	}
	return litOperand{sql: sql}, nil
}

// renderLiteral formats a Go value as a SQL literal appropriate for the
// column's semantic type. String literals are single-quoted with embedded
// quotes doubled, so legitimate inputs never produce broken SQL.
func renderLiteral(col Column, v any) (string, error) {
	kind := col.typ.Kind
	switch v := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		if kind == schema.Unknown || kind == schema.Text || kind == schema.Date || kind == schema.DateTime {
			return quoteString(v), nil
		}
	case int:
		return intLiteral(col, int64(v))
	case int8:
		return intLiteral(col, int64(v))
	case int16:
		return intLiteral(col, int64(v))
	case int32:
		return intLiteral(col, int64(v))
	case int64:
		return intLiteral(col, v)
	case uint:
		return uintLiteral(col, uint64(v))
	case uint8:
		return uintLiteral(col, uint64(v))
	case uint16:
		return uintLiteral(col, uint64(v))
	case uint32:
		return uintLiteral(col, uint64(v))
	case uint64:
		return uintLiteral(col, v)
	case float32:
		if kind == schema.Unknown || kind == schema.Float {
			return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
		}
	case float64:
		if kind == schema.Unknown || kind == schema.Float {
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		}
	case bool:
		if kind == schema.Unknown || kind == schema.Boolean {
			if v {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
	case time.Time:
		switch kind {
		case schema.Date:
			return "'" + v.Format("2006-01-02") + "'", nil
		case schema.DateTime, schema.Unknown:
			return "'" + v.Format("2006-01-02 15:04:05") + "'", nil
		}
	}
	return "", &TypeMismatchError{Table: col.table, Column: col.name, ColumnType: col.typ, Value: v}
}

func intLiteral(col Column, v int64) (string, error) {
	switch col.typ.Kind {
	case schema.Unknown, schema.Integer, schema.Float:
		return strconv.FormatInt(v, 10), nil
	}
	return "", &TypeMismatchError{Table: col.table, Column: col.name, ColumnType: col.typ, Value: v}
}

// uintLiteral formats unsigned values directly so the full uint64 range
// renders without an overflowing conversion through int64.
func uintLiteral(col Column, v uint64) (string, error) {
	switch col.typ.Kind {
	case schema.Unknown, schema.Integer, schema.Float:
		return strconv.FormatUint(v, 10), nil
	}
	return "", &TypeMismatchError{Table: col.table, Column: col.name, ColumnType: col.typ, Value: v}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
