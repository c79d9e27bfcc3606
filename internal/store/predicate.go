package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Op identifies how a Condition compares its column with its value.
type Op string

// Supported comparison operators.
const (
	OpEq           Op = "eq"
	OpContainsFold Op = "contains_fold"
	OpGt           Op = "gt"
	OpLt           Op = "lt"
)

// Condition is a single comparison between a column and a value.
// Column names come from code, never from request input.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Eq matches rows whose column equals v.
func Eq(column string, v any) Condition {
	return Condition{Column: column, Op: OpEq, Value: v}
}

// ContainsFold matches rows whose column contains s, ignoring case.
func ContainsFold(column, s string) Condition {
	return Condition{Column: column, Op: OpContainsFold, Value: s}
}

// Gt matches rows whose column is strictly greater than v.
func Gt(column string, v any) Condition {
	return Condition{Column: column, Op: OpGt, Value: v}
}

// Lt matches rows whose column is strictly less than v.
func Lt(column string, v any) Condition {
	return Condition{Column: column, Op: OpLt, Value: v}
}

// ToSql renders the condition as a squirrel fragment.
func (c Condition) ToSql() (string, []interface{}, error) {
	switch c.Op {
	case OpEq:
		return sq.Eq{c.Column: c.Value}.ToSql()
	case OpContainsFold:
		s, ok := c.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("contains_fold on %s needs a string value, got %T", c.Column, c.Value)
		}
		return sq.ILike{c.Column: "%" + escapeLike(s) + "%"}.ToSql()
	case OpGt:
		return sq.Gt{c.Column: c.Value}.ToSql()
	case OpLt:
		return sq.Lt{c.Column: c.Value}.ToSql()
	default:
		return "", nil, fmt.Errorf("unsupported operator %q on %s", c.Op, c.Column)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Predicate is an ordered conjunction of conditions. The empty predicate
// matches every row.
type Predicate []Condition

// And returns a new predicate with conds appended.
func (p Predicate) And(conds ...Condition) Predicate {
	out := make(Predicate, 0, len(p)+len(conds))
	out = append(out, p...)
	return append(out, conds...)
}

// IsEmpty reports whether the predicate has no conditions.
func (p Predicate) IsEmpty() bool {
	return len(p) == 0
}

// ToSql implements squirrel.Sqlizer. An empty predicate renders as (1=1).
func (p Predicate) ToSql() (string, []interface{}, error) {
	and := make(sq.And, 0, len(p))
	for _, c := range p {
		and = append(and, c)
	}
	return and.ToSql()
}

// Optional yields a condition only when its filter value is present.
type Optional func() (Condition, bool)

// When builds an Optional that applies fn to *v when v is non-nil.
func When[T any](v *T, fn func(T) Condition) Optional {
	return func() (Condition, bool) {
		if v == nil {
			return Condition{}, false
		}
		return fn(*v), true
	}
}

// Build folds opts in order, keeping the conditions whose values are present.
func Build(opts ...Optional) Predicate {
	p := Predicate{}
	for _, opt := range opts {
		if c, ok := opt(); ok {
			p = p.And(c)
		}
	}
	return p
}
