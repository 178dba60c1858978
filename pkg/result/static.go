package result

// Label is a PrintRequest with a fixed label.
type Label string

func (l Label) Label() string { return string(l) }

// Labels builds PrintRequests from plain strings.
func Labels(labels ...string) []PrintRequest {
	prs := make([]PrintRequest, len(labels))
	for i, l := range labels {
		prs[i] = Label(l)
	}
	return prs
}

// Text is a Value rendered as itself.
type Text string

func (t Text) WikiValue() string { return string(t) }

// sliceField yields a fixed list of values.
type sliceField struct {
	values []Value
	index  int
}

// Values returns a Field over the given values.
func Values(values ...Value) Field {
	return &sliceField{values: values, index: -1}
}

// Strings returns a Field whose values render as the given strings.
func Strings(values ...string) Field {
	vs := make([]Value, len(values))
	for i, v := range values {
		vs[i] = Text(v)
	}
	return Values(vs...)
}

func (f *sliceField) Next() bool {
	if f.index >= len(f.values) {
		return false
	}
	f.index++
	return f.index < len(f.values)
}

func (f *sliceField) Value() Value {
	if f.index < 0 || f.index >= len(f.values) {
		return nil
	}
	return f.values[f.index]
}

// Slice is a QueryResult over rows already held in memory.
// It is still single pass: once drained it stays drained.
type Slice struct {
	Columns []PrintRequest
	Rows    []Row
	Err     error

	index   int
	started bool
}

func (s *Slice) PrintRequests() []PrintRequest {
	return s.Columns
}

func (s *Slice) Next() bool {
	if !s.started {
		s.started = true
		s.index = -1
	}
	if s.index >= len(s.Rows) {
		return false
	}
	s.index++
	return s.index < len(s.Rows)
}

func (s *Slice) Row() Row {
	if s.index < 0 || s.index >= len(s.Rows) {
		return nil
	}
	return s.Rows[s.index]
}

func (s *Slice) Error() error {
	if s.started && s.index >= len(s.Rows) {
		return s.Err
	}
	return nil
}
