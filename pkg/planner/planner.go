package planner

import (
	"fmt"

	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/plan"
	"github.com/bisegni/qprint/pkg/query"
)

// DefaultTable is the scan name used when a query has no FROM clause.
const DefaultTable = "default"

// CreatePlan converts a parsed query into an execution plan. Named tables are
// looked up in catalog; with a nil catalog every name resolves to rootTable.
func CreatePlan(q *query.SelectQuery, rootTable database.Table, catalog *database.Catalog) (plan.Node, error) {
	// 1. Resolve input (FROM)
	var current plan.Node
	switch {
	case q.FromQuery != nil:
		sub, err := CreatePlan(q.FromQuery, rootTable, catalog)
		if err != nil {
			return nil, err
		}
		current = sub
	case q.FromTable != "" && catalog != nil:
		t, err := catalog.GetTable(q.FromTable)
		if err != nil {
			return nil, err
		}
		current = &plan.ScanNode{TableName: q.FromTable, Table: t}
	default:
		if rootTable == nil {
			return nil, fmt.Errorf("query has no input: add FROM or provide a file")
		}
		name := q.FromTable
		if name == "" {
			name = DefaultTable
		}
		current = &plan.ScanNode{TableName: name, Table: rootTable}
	}

	// 2. WHERE
	if q.Filter != nil {
		current = &plan.FilterNode{Input: current, Expression: q.Filter, Text: q.Where}
	}

	// 3. Projection; SELECT * keeps rows as they are
	if len(q.Fields) > 0 && !q.Star() {
		current = &plan.ProjectNode{Input: current, Fields: q.Fields}
	}

	// 4. LIMIT
	if q.Limit >= 0 {
		current = &plan.LimitNode{Input: current, Count: q.Limit}
	}
	return current, nil
}

// WithLimit caps an existing plan. A negative count leaves it unchanged.
func WithLimit(n plan.Node, count int) plan.Node {
	if count < 0 {
		return n
	}
	if l, ok := n.(*plan.LimitNode); ok && l.Count <= count {
		return n
	}
	return &plan.LimitNode{Input: n, Count: count}
}
