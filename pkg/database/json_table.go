package database

import (
	"errors"
	"io"

	"github.com/bisegni/qprint/pkg/parser"
	"github.com/bisegni/qprint/pkg/query"
)

// JSONRow implements Row for decoded JSON data.
type JSONRow struct {
	data interface{}
}

// NewJSONRow creates a new Row from raw data
func NewJSONRow(data interface{}) Row {
	return &JSONRow{data: data}
}

func (r *JSONRow) Get(path string) (interface{}, error) {
	p := query.NewPath(path)
	switch v := r.data.(type) {
	case parser.Record:
		return p.Extract(v)
	case map[string]interface{}:
		return p.Extract(parser.Record(v))
	case OrderedMap:
		return p.Extract(parser.Record(v.ToMap()))
	default:
		// Scalars and arrays answer only the empty path.
		if path == "" || path == "." {
			return v, nil
		}
		return p.Extract(parser.Record{})
	}
}

func (r *JSONRow) Primitive() interface{} {
	return r.data
}

// JSONTable adapts a JSON or JSONL source to the Table interface. Each call
// to Iterate reopens the source.
type JSONTable struct {
	source string
}

func NewJSONTable(source string) *JSONTable {
	return &JSONTable{source: source}
}

// Source returns the file name or inline document the table reads.
func (t *JSONTable) Source() string {
	return t.source
}

func (t *JSONTable) Iterate() (RowIterator, error) {
	p, err := parser.NewParser(t.source)
	if err != nil {
		return nil, err
	}
	return &jsonIterator{parser: p}, nil
}

type jsonIterator struct {
	parser  *parser.Parser
	current Row
	err     error
}

func (it *jsonIterator) Next() bool {
	if it.err != nil {
		return false
	}
	record, err := it.parser.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			it.err = err
		}
		return false
	}
	it.current = &JSONRow{data: record}
	return true
}

func (it *jsonIterator) Row() Row {
	return it.current
}

func (it *jsonIterator) Error() error {
	return it.err
}

func (it *jsonIterator) Close() error {
	return it.parser.Close()
}
