package plan

import (
	"fmt"
	"strings"

	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/query"
)

// ProjectNode narrows each row to the selected fields, in order. Array
// values are kept whole so that a multi-valued field stays one column.
type ProjectNode struct {
	Input  Node
	Fields []query.Field
}

func (n *ProjectNode) Execute() (database.RowIterator, error) {
	inputIter, err := n.Input.Execute()
	if err != nil {
		return nil, err
	}
	return &projectIterator{source: inputIter, fields: n.Fields}, nil
}

func (n *ProjectNode) Children() []Node {
	return []Node{n.Input}
}

func (n *ProjectNode) Explain() string {
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.String()
	}
	return fmt.Sprintf("Project(%s)", strings.Join(names, ", "))
}
