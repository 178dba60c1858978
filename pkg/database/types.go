package database

// Row is a single record of a table.
type Row interface {
	// Get resolves a dotted path against the record.
	Get(path string) (interface{}, error)
	// Primitive returns the underlying data structure.
	Primitive() interface{}
}

// RowIterator allows iterating over rows in a table.
type RowIterator interface {
	// Next advances the iterator. Returns false if no more rows or error.
	Next() bool
	// Row returns the current row.
	Row() Row
	// Error returns any error that occurred during iteration.
	Error() error
	// Close releases resources.
	Close() error
}

// Table is a dataset that can be scanned, possibly more than once.
type Table interface {
	// Iterate returns a new iterator positioned before the first row.
	Iterate() (RowIterator, error)
}
