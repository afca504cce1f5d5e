package ddlq

import (
	"fmt"
	"strings"

	"github.com/nordql/ddlq/internal/dialect"
)

// BuildError reports a builder invariant violated at render time: an empty
// select list, no table set, or a join without a condition.
type BuildError struct {
	Reason string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build error: %s", e.Reason)
}

// JoinKind selects the join clause variant.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
)

func (k JoinKind) String() string {
	switch k {
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	default:
		return "INNER JOIN"
	}
}

type joinClause struct {
	kind  JoinKind
	table Table
	on    []Cond
}

// Select is an incrementally constructed SELECT statement. It offers two
// equivalent construction styles: fluent chaining (With*, each call returns
// the builder) and imperative mutation (Push*/Set*). Both produce identical
// SQL for the same sequence of logical operations.
//
// A Select is built for single-owner, sequential use; concurrent mutation
// of one builder from multiple goroutines is not supported. Build does not
// consume the builder: it may be called repeatedly, and mutations after a
// Build are reflected in the next Build.
type Select struct {
	rules   *dialect.Rules
	cols    []Selector
	table   *Table
	joins   []joinClause
	where   []Cond
	groupBy []Column
	having  []Cond
	orderBy []OrderTerm
	limit   *uint
	offset  *uint
	err     error
}

// NewSelect creates an empty builder rendering ANSI double-quoted
// identifiers. Use WithDialect or SetDialect for MySQL backtick quoting.
func NewSelect() *Select {
	return &Select{rules: dialect.Postgres}
}

// WithDialect sets the identifier-quoting dialect and returns the builder.
func (s *Select) WithDialect(name string) *Select {
	s.SetDialect(name)
	return s
}

// WithColumn appends a column or wildcard to the select list and returns
// the builder.
func (s *Select) WithColumn(sel Selector) *Select {
	s.PushColumn(sel)
	return s
}

// WithColumns appends several selectors and returns the builder.
func (s *Select) WithColumns(sels ...Selector) *Select {
	s.PushColumns(sels...)
	return s
}

// WithTable sets the FROM table and returns the builder. Setting it twice
// overwrites: last write wins.
func (s *Select) WithTable(t Table) *Select {
	s.SetTable(t)
	return s
}

// WithJoin appends an inner join and returns the builder.
func (s *Select) WithJoin(t Table, on ...Cond) *Select {
	s.InnerJoin(t, on...)
	return s
}

// WithInnerJoin appends an inner join and returns the builder.
func (s *Select) WithInnerJoin(t Table, on ...Cond) *Select {
	s.InnerJoin(t, on...)
	return s
}

// WithLeftJoin appends a left join and returns the builder.
func (s *Select) WithLeftJoin(t Table, on ...Cond) *Select {
	s.LeftJoin(t, on...)
	return s
}

// WithRightJoin appends a right join and returns the builder.
func (s *Select) WithRightJoin(t Table, on ...Cond) *Select {
	s.RightJoin(t, on...)
	return s
}

// WithFullJoin appends a full join and returns the builder.
func (s *Select) WithFullJoin(t Table, on ...Cond) *Select {
	s.FullJoin(t, on...)
	return s
}

// WithWhereCond appends a top-level filter and returns the builder.
// Filters are AND-combined.
func (s *Select) WithWhereCond(c Cond) *Select {
	s.PushWhereCond(c)
	return s
}

// WithGroup appends grouping columns and returns the builder.
func (s *Select) WithGroup(cols ...Column) *Select {
	s.PushGroup(cols...)
	return s
}

// WithHaving appends a grouping filter and returns the builder.
func (s *Select) WithHaving(c Cond) *Select {
	s.PushHaving(c)
	return s
}

// WithOrder appends an ordering term and returns the builder.
func (s *Select) WithOrder(o OrderTerm) *Select {
	s.PushOrder(o)
	return s
}

// WithLimit sets the row limit and returns the builder.
func (s *Select) WithLimit(n uint) *Select {
	s.SetLimit(n)
	return s
}

// WithLimitOffset sets the row offset and returns the builder. The offset
// renders only when a limit is also set.
func (s *Select) WithLimitOffset(n uint) *Select {
	s.SetLimitOffset(n)
	return s
}

// SetDialect sets the identifier-quoting dialect. An unknown name is
// reported by Build.
func (s *Select) SetDialect(name string) {
	rules, err := dialect.Lookup(name)
	if err != nil {
		if s.err == nil {
			s.err = &BuildError{Reason: err.Error()}
		}
		return
	}
	s.rules = rules
}

// PushColumn appends a column or wildcard to the select list.
func (s *Select) PushColumn(sel Selector) {
	s.cols = append(s.cols, sel)
}

// PushColumns appends several selectors.
func (s *Select) PushColumns(sels ...Selector) {
	for _, sel := range sels {
		s.PushColumn(sel)
	}
}

// SetTable sets the FROM table. Setting it twice overwrites: last write
// wins.
func (s *Select) SetTable(t Table) {
	s.table = &t
}

// Join appends an inner join.
func (s *Select) Join(t Table, on ...Cond) {
	s.InnerJoin(t, on...)
}

// InnerJoin appends an inner join. The condition set must be non-empty; a
// cross join is never produced implicitly (express one as an inner join
// with a literal true condition).
func (s *Select) InnerJoin(t Table, on ...Cond) {
	s.pushJoin(InnerJoin, t, on)
}

// LeftJoin appends a left join.
func (s *Select) LeftJoin(t Table, on ...Cond) {
	s.pushJoin(LeftJoin, t, on)
}

// RightJoin appends a right join.
func (s *Select) RightJoin(t Table, on ...Cond) {
	s.pushJoin(RightJoin, t, on)
}

// FullJoin appends a full join.
func (s *Select) FullJoin(t Table, on ...Cond) {
	s.pushJoin(FullJoin, t, on)
}

func (s *Select) pushJoin(kind JoinKind, t Table, on []Cond) {
	s.joins = append(s.joins, joinClause{kind: kind, table: t, on: on})
}

// PushWhereCond appends a top-level filter. Filters are AND-combined.
func (s *Select) PushWhereCond(c Cond) {
	s.where = append(s.where, c)
}

// PushGroup appends grouping columns.
func (s *Select) PushGroup(cols ...Column) {
	s.groupBy = append(s.groupBy, cols...)
}

// PushHaving appends a grouping filter. Having filters are AND-combined.
func (s *Select) PushHaving(c Cond) {
	s.having = append(s.having, c)
}

// PushOrder appends an ordering term.
func (s *Select) PushOrder(o OrderTerm) {
	s.orderBy = append(s.orderBy, o)
}

// SetLimit sets the row limit.
func (s *Select) SetLimit(n uint) {
	s.limit = &n
}

// SetLimitOffset sets the row offset. The offset renders only when a limit
// is also set.
func (s *Select) SetLimitOffset(n uint) {
	s.offset = &n
}

// Build renders the statement. It is pure and idempotent: successive calls
// on the same builder state return byte-identical output, and the builder
// remains usable afterwards.
func (s *Select) Build() (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	r := s.rules

	var b strings.Builder
	b.WriteString("SELECT ")
	for i, col := range s.cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.selectSQL(r))
	}
	b.WriteString(" FROM ")
	b.WriteString(r.QuoteIdent(s.table.name))

	for _, j := range s.joins {
		b.WriteString(" ")
		b.WriteString(j.kind.String())
		b.WriteString(" ")
		b.WriteString(r.QuoteIdent(j.table.name))
		b.WriteString(" ON ")
		b.WriteString(formatCond(j.on, "AND", r))
	}

	if len(s.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(formatCond(s.where, "AND", r))
	}
	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		for i, col := range s.groupBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(col.render(r))
		}
	}
	if len(s.having) > 0 {
		b.WriteString(" HAVING ")
		b.WriteString(formatCond(s.having, "AND", r))
	}
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.orderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.render(r))
		}
	}
	if s.limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *s.limit)
		if s.offset != nil {
			fmt.Fprintf(&b, " OFFSET %d", *s.offset)
		}
	}
	return b.String(), nil
}

func (s *Select) validate() error {
	if s.err != nil {
		return s.err
	}
	if s.table == nil {
		return &BuildError{Reason: "no table set"}
	}
	if len(s.cols) == 0 {
		return &BuildError{Reason: "empty select list"}
	}
	for _, j := range s.joins {
		if len(j.on) == 0 {
			return &BuildError{Reason: fmt.Sprintf("join on %q has no condition", j.table.name)}
		}
		if err := condErr(j.on); err != nil {
			return err
		}
	}
	if err := condErr(s.where); err != nil {
		return err
	}
	return condErr(s.having)
}
