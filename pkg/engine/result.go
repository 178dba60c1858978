package engine

import (
	"sort"

	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/parser"
	"github.com/bisegni/qprint/pkg/result"
)

// ValueColumn labels the single column of a result whose rows are not
// objects.
const ValueColumn = "value"

// Result adapts a plan iterator to result.QueryResult. Each row becomes one
// field per column; array values become multi-valued fields.
type Result struct {
	iter    database.RowIterator
	columns []string
	labels  []result.PrintRequest
	scalar  bool

	peeked  bool
	pending database.Row
	row     result.Row
	done    bool
	closed  bool
}

var _ result.QueryResult = (*Result)(nil)

// newResult wraps iter. With no columns, they are taken from the first row:
// insertion order for projected rows, sorted keys for raw objects.
func newResult(iter database.RowIterator, columns []string, mainLabel string) *Result {
	r := &Result{iter: iter, columns: columns}
	if columns == nil {
		r.columns = r.peekColumns()
	}
	labels := make([]string, len(r.columns))
	copy(labels, r.columns)
	if mainLabel != "" && len(labels) > 0 {
		labels[0] = mainLabel
	}
	r.labels = result.Labels(labels...)
	return r
}

func (r *Result) peekColumns() []string {
	r.peeked = true
	if !r.iter.Next() {
		r.done = true
		return []string{}
	}
	r.pending = r.iter.Row()
	switch v := r.pending.Primitive().(type) {
	case database.OrderedMap:
		return v.Keys()
	case parser.Record:
		return sortedKeys(v)
	case map[string]interface{}:
		return sortedKeys(v)
	}
	r.scalar = true
	return []string{ValueColumn}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Columns returns the column keys, before any main label is applied.
func (r *Result) Columns() []string {
	return r.columns
}

func (r *Result) PrintRequests() []result.PrintRequest {
	return r.labels
}

func (r *Result) Next() bool {
	if r.done {
		r.row = nil
		r.Close()
		return false
	}
	var row database.Row
	if r.peeked && r.pending != nil {
		row, r.pending = r.pending, nil
	} else if r.iter.Next() {
		row = r.iter.Row()
	} else {
		r.done = true
		r.row = nil
		r.Close()
		return false
	}
	r.row = r.convert(row.Primitive())
	return true
}

func (r *Result) convert(data interface{}) result.Row {
	row := make(result.Row, len(r.columns))
	if r.scalar {
		row[0] = fieldOf(data)
		return row
	}
	for i, key := range r.columns {
		var val interface{}
		switch v := data.(type) {
		case database.OrderedMap:
			val, _ = v.Get(key)
		case parser.Record:
			val = v[key]
		case map[string]interface{}:
			val = v[key]
		}
		row[i] = fieldOf(val)
	}
	return row
}

func (r *Result) Row() result.Row {
	return r.row
}

// Error reports a failure of the underlying scan.
func (r *Result) Error() error {
	return r.iter.Error()
}

// Close releases the underlying input. It is safe to call more than once.
func (r *Result) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.iter.Close()
}
