package export

import (
	"html"
	"strings"

	"github.com/bisegni/qprint/pkg/result"
)

// ValueSeparator joins the values of one multi-valued field.
const ValueSeparator = ","

// Walk consumes res exactly once. When includeHeader is set, emit is first
// called with the labels of the print requests. It is then called once per
// row with the flattened field strings, in result order.
//
// Every emitted line has one entry per print request: missing fields are
// empty and surplus fields are dropped. The slice passed to emit is reused
// between calls.
func Walk(res result.QueryResult, includeHeader bool, emit func(line []string) error) error {
	prs := res.PrintRequests()
	line := make([]string, len(prs))

	if includeHeader {
		for i, pr := range prs {
			line[i] = pr.Label()
		}
		if err := emit(line); err != nil {
			return err
		}
	}

	for res.Next() {
		row := res.Row()
		for i := range line {
			if i < len(row) && row[i] != nil {
				line[i] = Flatten(row[i])
			} else {
				line[i] = ""
			}
		}
		if err := emit(line); err != nil {
			return err
		}
	}
	return res.Error()
}

// Flatten drains f and joins its decoded values with ValueSeparator.
// A field without values flattens to the empty string.
func Flatten(f result.Field) string {
	var sb strings.Builder
	n := 0
	for f.Next() {
		v := f.Value()
		if v == nil {
			continue
		}
		if n > 0 {
			sb.WriteString(ValueSeparator)
		}
		sb.WriteString(html.UnescapeString(v.WikiValue()))
		n++
	}
	return sb.String()
}
