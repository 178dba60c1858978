package plan

import (
	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/parser"
	"github.com/bisegni/qprint/pkg/query"
)

// --- Filter Iterator ---

type filterIterator struct {
	source     database.RowIterator
	expression query.Expression
}

func (it *filterIterator) Next() bool {
	for it.source.Next() {
		var record parser.Record
		switch v := it.source.Row().Primitive().(type) {
		case parser.Record:
			record = v
		case map[string]interface{}:
			record = v
		case database.OrderedMap:
			record = v.ToMap()
		default:
			// Non-object rows cannot satisfy a field condition
			continue
		}

		if it.expression.Evaluate(record) {
			return true
		}
	}
	return false
}

func (it *filterIterator) Row() database.Row {
	return it.source.Row()
}

func (it *filterIterator) Error() error {
	return it.source.Error()
}

func (it *filterIterator) Close() error {
	return it.source.Close()
}

// --- Project Iterator ---

type projectIterator struct {
	source     database.RowIterator
	fields     []query.Field
	currentRow database.Row
}

func (it *projectIterator) Next() bool {
	if !it.source.Next() {
		return false
	}
	src := it.source.Row()
	row := make(database.OrderedMap, len(it.fields))
	for i, f := range it.fields {
		key := f.Alias
		if key == "" {
			key = f.Path
		}
		val, err := src.Get(f.Path)
		if err != nil {
			// Missing fields project as null
			val = nil
		}
		row[i] = database.KeyVal{Key: key, Val: val}
	}
	it.currentRow = database.NewJSONRow(row)
	return true
}

func (it *projectIterator) Row() database.Row {
	return it.currentRow
}

func (it *projectIterator) Error() error {
	return it.source.Error()
}

func (it *projectIterator) Close() error {
	return it.source.Close()
}

// --- Limit Iterator ---

type limitIterator struct {
	source    database.RowIterator
	remaining int
}

func (it *limitIterator) Next() bool {
	if it.remaining <= 0 {
		return false
	}
	if !it.source.Next() {
		return false
	}
	it.remaining--
	return true
}

func (it *limitIterator) Row() database.Row {
	return it.source.Row()
}

func (it *limitIterator) Error() error {
	return it.source.Error()
}

func (it *limitIterator) Close() error {
	return it.source.Close()
}
