// Package result defines the query result model consumed by the exporters.
//
// A QueryResult is a single-pass, forward-only producer of rows. Each row
// holds one Field per PrintRequest and every Field yields zero or more
// Values. Nothing in this package can be rewound.
package result

// PrintRequest describes one output column.
type PrintRequest interface {
	// Label is the display label used for the header line.
	Label() string
}

// Value is a scalar with a canonical textual rendering.
type Value interface {
	// WikiValue returns the canonical rendering. It may contain HTML
	// character references that are decoded before serialization.
	WikiValue() string
}

// Field is a multi-valued cell. It is drained once with Next/Value.
type Field interface {
	// Next advances to the next value. Returns false when exhausted.
	Next() bool
	// Value returns the current value.
	Value() Value
}

// Row is positionally aligned with the PrintRequests of its result.
type Row []Field

// QueryResult produces rows in order, exactly once.
type QueryResult interface {
	// PrintRequests returns the column descriptors in output order.
	PrintRequests() []PrintRequest
	// Next advances the result. Returns false if no more rows or error.
	Next() bool
	// Row returns the current row.
	Row() Row
	// Error returns any error that occurred while producing rows.
	Error() error
}
