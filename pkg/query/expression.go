package query

import (
	"github.com/bisegni/qprint/pkg/parser"
)

// Expression is a boolean expression that can be evaluated against a record
type Expression interface {
	Evaluate(record parser.Record) bool
}

// Condition is a simple filter (leaf node)
type Condition struct {
	Filter *Filter
}

func (c *Condition) Evaluate(record parser.Record) bool {
	return c.Filter.Match(record)
}

// AndExpression represents Logical AND
type AndExpression struct {
	Left  Expression
	Right Expression
}

func (a *AndExpression) Evaluate(record parser.Record) bool {
	return a.Left.Evaluate(record) && a.Right.Evaluate(record)
}

// OrExpression represents Logical OR
type OrExpression struct {
	Left  Expression
	Right Expression
}

func (o *OrExpression) Evaluate(record parser.Record) bool {
	return o.Left.Evaluate(record) || o.Right.Evaluate(record)
}
