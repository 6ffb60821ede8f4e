// Package query describes task filters as a small expression tree.
//
// An Expr can be evaluated directly against a domain.Task with Match, or
// compiled by a storage backend into its native query language. Every
// comparison against an unset optional field is false, so the tree has the
// same meaning in Go and in SQL (where NULL comparisons are never true).
package query

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"todo-store/internal/domain"
)

// Field names a filterable Task attribute. The value doubles as the column name.
type Field string

const (
	FieldID        Field = "id"
	FieldTaskName  Field = "task_name"
	FieldNumber    Field = "number"
	FieldDateStart Field = "date_start"
	FieldDateEnd   Field = "date_end"
	FieldIsActive  Field = "is_active"
)

// Valid reports whether f is a known Task field.
func (f Field) Valid() bool {
	switch f {
	case FieldID, FieldTaskName, FieldNumber, FieldDateStart, FieldDateEnd, FieldIsActive:
		return true
	}
	return false
}

// Op is a comparison operator.
type Op int

const (
	OpEq Op = iota
	OpLt
	OpLe
	OpGt
	OpGe
)

// String returns the SQL spelling of the operator.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Expr is a boolean filter over tasks.
type Expr interface {
	Match(t *domain.Task) bool
	String() string
}

// Compare compares a task field against a constant.
// Value must be a time.Time, int, bool or string matching the field.
type Compare struct {
	Field Field
	Op    Op
	Value any
}

// NotNull matches tasks whose field is set.
type NotNull struct {
	Field Field
}

// And matches when every child matches. An empty And matches everything.
type And []Expr

// Or matches when any child matches. An empty Or matches nothing.
type Or []Expr

// Conjunction combines exprs with logical AND, flattening nested Ands.
func Conjunction(exprs ...Expr) Expr {
	out := make(And, 0, len(exprs))
	for _, e := range exprs {
		if inner, ok := e.(And); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// Disjunction combines exprs with logical OR.
func Disjunction(exprs ...Expr) Expr {
	return Or(exprs)
}

// Match implements Expr.
func (c Compare) Match(t *domain.Task) bool {
	if t == nil {
		return false
	}
	switch c.Field {
	case FieldDateStart, FieldDateEnd:
		v, ok := c.Value.(time.Time)
		if !ok {
			return false
		}
		return compareTimes(timeField(t, c.Field), &v, c.Op)
	case FieldNumber:
		v, ok := c.Value.(int)
		if !ok {
			return false
		}
		return compareInts(t.Number, &v, c.Op)
	case FieldIsActive:
		v, ok := c.Value.(bool)
		if !ok || c.Op != OpEq {
			return false
		}
		return domain.EqualBool(t.IsActive, &v)
	case FieldID, FieldTaskName:
		v, ok := c.Value.(string)
		if !ok {
			return false
		}
		s := t.ID
		if c.Field == FieldTaskName {
			s = t.TaskName
		}
		return applyOrdering(cmp.Compare(s, v), c.Op)
	}
	return false
}

func (c Compare) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

// Match implements Expr.
func (n NotNull) Match(t *domain.Task) bool {
	if t == nil {
		return false
	}
	switch n.Field {
	case FieldID, FieldTaskName:
		return true
	case FieldNumber:
		return t.Number != nil
	case FieldDateStart:
		return t.DateStart != nil
	case FieldDateEnd:
		return t.DateEnd != nil
	case FieldIsActive:
		return t.IsActive != nil
	}
	return false
}

func (n NotNull) String() string {
	return fmt.Sprintf("%s IS NOT NULL", n.Field)
}

// Match implements Expr.
func (a And) Match(t *domain.Task) bool {
	for _, e := range a {
		if !e.Match(t) {
			return false
		}
	}
	return true
}

func (a And) String() string {
	return join(a, " AND ")
}

// Match implements Expr.
func (o Or) Match(t *domain.Task) bool {
	for _, e := range o {
		if e.Match(t) {
			return true
		}
	}
	return false
}

func (o Or) String() string {
	return join(o, " OR ")
}

// Filter returns the tasks matching e, preserving order.
func Filter(tasks []*domain.Task, e Expr) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if e.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func join(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = "(" + e.String() + ")"
	}
	return strings.Join(parts, sep)
}

func timeField(t *domain.Task, f Field) *time.Time {
	if f == FieldDateEnd {
		return t.DateEnd
	}
	return t.DateStart
}

func compareTimes(a, b *time.Time, op Op) bool {
	switch op {
	case OpEq:
		return domain.EqualTime(a, b)
	case OpLt:
		return domain.LessTime(a, b)
	case OpLe:
		return domain.LessOrEqualTime(a, b)
	case OpGt:
		return domain.LessTime(b, a)
	case OpGe:
		return domain.LessOrEqualTime(b, a)
	}
	return false
}

func compareInts(a, b *int, op Op) bool {
	switch op {
	case OpEq:
		return domain.EqualInt(a, b)
	case OpLt:
		return domain.LessInt(a, b)
	case OpLe:
		return domain.LessOrEqualInt(a, b)
	case OpGt:
		return domain.LessInt(b, a)
	case OpGe:
		return domain.LessOrEqualInt(b, a)
	}
	return false
}

func applyOrdering(c int, op Op) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	}
	return false
}
