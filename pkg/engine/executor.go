package engine

import (
	"fmt"

	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/plan"
	"github.com/bisegni/qprint/pkg/planner"
	"github.com/bisegni/qprint/pkg/query"
)

// Executor turns query text into results ready for export.
type Executor struct {
	catalog *database.Catalog
}

// NewExecutor creates an executor. catalog resolves FROM names and may be
// nil, in which case every query reads the input table.
func NewExecutor(catalog *database.Catalog) *Executor {
	return &Executor{catalog: catalog}
}

// Prepared is a planned query that has not been run yet.
type Prepared struct {
	Query *query.SelectQuery
	Plan  plan.Node
}

// Prepare parses and plans sql against input. A positive limit caps the
// number of rows on top of any LIMIT in the query.
func (e *Executor) Prepare(sql string, input database.Table, limit int) (*Prepared, error) {
	q, err := query.ParseQuery(sql)
	if err != nil {
		return nil, err
	}
	root, err := planner.CreatePlan(q, input, e.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to plan query: %w", err)
	}
	if limit > 0 {
		root = planner.WithLimit(root, limit)
	}
	return &Prepared{Query: q, Plan: root}, nil
}

// Explain renders the plan tree.
func (p *Prepared) Explain() string {
	return plan.FormatPlan(p.Plan)
}

// Open starts the plan and returns its rows as a query result. mainLabel,
// when not empty, replaces the label of the first column. The caller must
// Close the result.
func (p *Prepared) Open(mainLabel string) (*Result, error) {
	iter, err := p.Plan.Execute()
	if err != nil {
		return nil, err
	}
	var columns []string
	if !p.Query.Star() {
		columns = make([]string, len(p.Query.Fields))
		for i, f := range p.Query.Fields {
			columns[i] = f.Alias
		}
	}
	return newResult(iter, columns, mainLabel), nil
}
