package ddlq

import (
	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/schema"
)

// Table is a reference to a table used when building queries.
type Table struct {
	name string
}

// Tbl creates a table reference.
func Tbl(name string) Table {
	return Table{name: name}
}

// Name returns the table name without quoting.
func (t Table) Name() string {
	return t.name
}

// Col creates a typed reference to a column of this table. The semantic
// type travels with the reference so condition constructors can reject
// mismatched comparisons before any SQL is rendered.
func (t Table) Col(name string, typ schema.Type) Column {
	return Column{table: t.name, name: name, typ: typ}
}

// All selects every column of the table, rendered as "table".*.
func (t Table) All() Selector {
	return wildcard{table: t.name}
}

// Column is a typed reference to a table column. It is a value type;
// copies are independent and safe to share.
type Column struct {
	table   string
	name    string
	typ     schema.Type
	primary bool
}

// Col creates a typed column reference without going through a Table.
func Col(table, name string, typ schema.Type) Column {
	return Column{table: table, name: name, typ: typ}
}

// Key marks the column as part of its table's primary key.
func (c Column) Key() Column {
	c.primary = true
	return c
}

// Name returns the column name without quoting.
func (c Column) Name() string { return c.name }

// TableName returns the owning table's name without quoting.
func (c Column) TableName() string { return c.table }

// Type returns the column's semantic type.
func (c Column) Type() schema.Type { return c.typ }

// IsPrimary reports whether the column was marked as a primary key.
func (c Column) IsPrimary() bool { return c.primary }

func (c Column) render(r *dialect.Rules) string {
	return r.QuoteIdent(c.table) + "." + r.QuoteIdent(c.name)
}

// Selector is one entry of a SELECT list: a column, a wildcard, an
// aggregate, or an aliased expression.
type Selector interface {
	selectSQL(r *dialect.Rules) string
}

func (c Column) selectSQL(r *dialect.Rules) string {
	return c.render(r)
}

type wildcard struct {
	table string
}

func (w wildcard) selectSQL(r *dialect.Rules) string {
	return r.QuoteIdent(w.table) + ".*"
}

// exprSelector is an aggregate or aliased column expression.
type exprSelector struct {
	fn    string // aggregate function name, empty for a plain column
	col   Column
	alias string
}

func (e exprSelector) selectSQL(r *dialect.Rules) string {
	sql := e.col.render(r)
	if e.fn != "" {
		sql = e.fn + "(" + sql + ")"
	}
	if e.alias != "" {
		sql += " AS " + r.QuoteIdent(e.alias)
	}
	return sql
}

// As selects the column under an alias: column AS "alias".
func (c Column) As(alias string) Selector {
	return exprSelector{col: c, alias: alias}
}

// Count produces COUNT(column).
func (c Column) Count() Selector { return exprSelector{fn: "COUNT", col: c} }

// CountAs produces COUNT(column) AS "alias".
func (c Column) CountAs(alias string) Selector { return exprSelector{fn: "COUNT", col: c, alias: alias} }

// Sum produces SUM(column).
func (c Column) Sum() Selector { return exprSelector{fn: "SUM", col: c} }

// SumAs produces SUM(column) AS "alias".
func (c Column) SumAs(alias string) Selector { return exprSelector{fn: "SUM", col: c, alias: alias} }

// Avg produces AVG(column).
func (c Column) Avg() Selector { return exprSelector{fn: "AVG", col: c} }

// AvgAs produces AVG(column) AS "alias".
func (c Column) AvgAs(alias string) Selector { return exprSelector{fn: "AVG", col: c, alias: alias} }

// Min produces MIN(column).
func (c Column) Min() Selector { return exprSelector{fn: "MIN", col: c} }

// MinAs produces MIN(column) AS "alias".
func (c Column) MinAs(alias string) Selector { return exprSelector{fn: "MIN", col: c, alias: alias} }

// Max produces MAX(column).
func (c Column) Max() Selector { return exprSelector{fn: "MAX", col: c} }

// MaxAs produces MAX(column) AS "alias".
func (c Column) MaxAs(alias string) Selector { return exprSelector{fn: "MAX", col: c, alias: alias} }

// OrderTerm is one entry of an ORDER BY list.
type OrderTerm struct {
	col  Column
	desc bool
}

// Asc orders by the column ascending.
func (c Column) Asc() OrderTerm { return OrderTerm{col: c} }

// Desc orders by the column descending.
func (c Column) Desc() OrderTerm { return OrderTerm{col: c, desc: true} }

func (o OrderTerm) render(r *dialect.Rules) string {
	if o.desc {
		return o.col.render(r) + " DESC"
	}
	return o.col.render(r) + " ASC"
}
