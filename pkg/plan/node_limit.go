package plan

import (
	"fmt"

	"github.com/bisegni/qprint/pkg/database"
)

// LimitNode passes through at most Count rows.
type LimitNode struct {
	Input Node
	Count int
}

func (n *LimitNode) Execute() (database.RowIterator, error) {
	inputIter, err := n.Input.Execute()
	if err != nil {
		return nil, err
	}
	return &limitIterator{source: inputIter, remaining: n.Count}, nil
}

func (n *LimitNode) Children() []Node {
	return []Node{n.Input}
}

func (n *LimitNode) Explain() string {
	return fmt.Sprintf("Limit(%d)", n.Count)
}
