package plan

import (
	"strings"
)

// FormatPlan renders the plan as an indented tree, root first.
func FormatPlan(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n, "", true)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node, indent string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	sb.WriteString(indent + branch + n.Explain() + "\n")

	children := n.Children()
	for i, child := range children {
		writeNode(sb, child, indent+next, i == len(children)-1)
	}
}
