package plan

import (
	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/query"
)

// FilterNode drops rows for which the expression is false
type FilterNode struct {
	Input      Node
	Expression query.Expression
	// Text is the WHERE clause as written, for Explain
	Text string
}

func (n *FilterNode) Execute() (database.RowIterator, error) {
	inputIter, err := n.Input.Execute()
	if err != nil {
		return nil, err
	}
	return &filterIterator{source: inputIter, expression: n.Expression}, nil
}

func (n *FilterNode) Children() []Node {
	return []Node{n.Input}
}

func (n *FilterNode) Explain() string {
	return "Filter(" + n.Text + ")"
}
