package ddlq

import (
	"strings"

	"github.com/nordql/ddlq/internal/dialect"
)

// Cond is an immutable predicate tree built from typed column references.
// Constructors stay chainable even on a type mismatch: the error is carried
// inside the Cond and surfaced by Build.
type Cond struct {
	node condNode
	err  error
}

type condNode interface {
	render(r *dialect.Rules) string
}

type cmpNode struct {
	left  Column
	op    string
	right operand
}

func (n cmpNode) render(r *dialect.Rules) string {
	return n.left.render(r) + " " + n.op + " " + n.right.render(r)
}

type betweenNode struct {
	col    Column
	lo, hi operand
}

func (n betweenNode) render(r *dialect.Rules) string {
	return n.col.render(r) + " BETWEEN " + n.lo.render(r) + " AND " + n.hi.render(r)
}

type nullNode struct {
	col Column
	not bool
}

func (n nullNode) render(r *dialect.Rules) string {
	if n.not {
		return n.col.render(r) + " IS NOT NULL"
	}
	return n.col.render(r) + " IS NULL"
}

type listNode struct {
	col  Column
	vals []operand
	not  bool
}

func (n listNode) render(r *dialect.Rules) string {
	// An empty IN list matches nothing, an empty NOT IN list matches
	// everything.
	if len(n.vals) == 0 {
		if n.not {
			return "TRUE"
		}
		return "FALSE"
	}
	parts := make([]string, len(n.vals))
	for i, v := range n.vals {
		parts[i] = v.render(r)
	}
	op := "IN"
	if n.not {
		op = "NOT IN"
	}
	return n.col.render(r) + " " + op + " (" + strings.Join(parts, ",") + ")"
}

type joinCondNode struct {
	op    string // "AND" or "OR"
	conds []Cond
}

func (n joinCondNode) render(r *dialect.Rules) string {
	// Vacuous truth: an empty AND holds, an empty OR does not.
	if len(n.conds) == 0 {
		if n.op == "AND" {
			return "TRUE"
		}
		return "FALSE"
	}
	return formatCond(n.conds, n.op, r)
}

// formatCond renders a condition list joined by the given operator. A
// single condition renders bare; multiple conditions are each
// parenthesized: (A) AND (B).
func formatCond(conds []Cond, op string, r *dialect.Rules) string {
	if len(conds) == 1 {
		return conds[0].node.render(r)
	}
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = "(" + c.node.render(r) + ")"
	}
	return strings.Join(parts, " "+op+" ")
}

// condErr returns the first construction error in the list.
func condErr(conds []Cond) error {
	for _, c := range conds {
		if c.err != nil {
			return c.err
		}
	}
	return nil
}

func (c Column) cmp(op string, v any) Cond {
	rhs, err := operandFor(c, v)
	if err != nil {
		return Cond{err: err}
	}
	return Cond{node: cmpNode{left: c, op: op, right: rhs}}
}

// Eq produces column = value. The value may be a Go literal or another
// Column.
func (c Column) Eq(v any) Cond { return c.cmp("=", v) }

// Ne produces column != value.
func (c Column) Ne(v any) Cond { return c.cmp("!=", v) }

// Gt produces column > value.
func (c Column) Gt(v any) Cond { return c.cmp(">", v) }

// Ge produces column >= value.
func (c Column) Ge(v any) Cond { return c.cmp(">=", v) }

// Lt produces column < value.
func (c Column) Lt(v any) Cond { return c.cmp("<", v) }

// Le produces column <= value.
func (c Column) Le(v any) Cond { return c.cmp("<=", v) }

// Like produces column LIKE value.
func (c Column) Like(v any) Cond { return c.cmp("LIKE", v) }

// NotLike produces column NOT LIKE value.
func (c Column) NotLike(v any) Cond { return c.cmp("NOT LIKE", v) }

// Between produces column BETWEEN lo AND hi.
func (c Column) Between(lo, hi any) Cond {
	loOp, err := operandFor(c, lo)
	if err != nil {
		return Cond{err: err}
	}
	hiOp, err := operandFor(c, hi)
	if err != nil {
		return Cond{err: err}
	}
	return Cond{node: betweenNode{col: c, lo: loOp, hi: hiOp}}
}

// IsNull produces column IS NULL.
func (c Column) IsNull() Cond { return Cond{node: nullNode{col: c}} }

// IsNotNull produces column IS NOT NULL.
func (c Column) IsNotNull() Cond { return Cond{node: nullNode{col: c, not: true}} }

func (c Column) list(not bool, vals []any) Cond {
	ops := make([]operand, 0, len(vals))
	for _, v := range vals {
		op, err := operandFor(c, v)
		if err != nil {
			return Cond{err: err}
		}
		ops = append(ops, op)
	}
	return Cond{node: listNode{col: c, vals: ops, not: not}}
}

// In produces column IN (values...).
func (c Column) In(vals ...any) Cond { return c.list(false, vals) }

// NotIn produces column NOT IN (values...).
func (c Column) NotIn(vals ...any) Cond { return c.list(true, vals) }

// And combines conditions as (A) AND (B) AND (C).
func And(conds ...Cond) Cond {
	if err := condErr(conds); err != nil {
		return Cond{err: err}
	}
	return Cond{node: joinCondNode{op: "AND", conds: conds}}
}

// Or combines conditions as (A) OR (B) OR (C).
func Or(conds ...Cond) Cond {
	if err := condErr(conds); err != nil {
		return Cond{err: err}
	}
	return Cond{node: joinCondNode{op: "OR", conds: conds}}
}
