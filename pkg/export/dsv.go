package export

import (
	"strings"
)

// rule is one literal substitution of the DSV escape table.
type rule struct {
	from, to string
}

// dsvControlRules turn backslash-letter sequences of the input into the
// control characters they name. This mutates data that contains such
// sequences literally (a two-character `\n` becomes a line feed); it is
// kept for compatibility with existing DSV consumers.
var dsvControlRules = []rule{
	{`\n`, "\n"},
	{`\r`, "\r"},
	{`\t`, "\t"},
	{`\b`, "\b"},
	{`\f`, "\f"},
}

// DSVEncoder encodes lines as delimiter-separated values. Fields are never
// quoted: the backslash is doubled and every occurrence of the separator is
// prefixed with a backslash.
//
// TODO: emit \onnn, \xnn and \unnnn escapes for other control characters
// once consumers can decode them.
type DSVEncoder struct {
	sep   string
	rules []rule
}

var _ Encoder = (*DSVEncoder)(nil)

// NewDSVEncoder returns an encoder using sep between fields. An empty
// separator, or one that collides with the escape prefix, falls back to
// DefaultDSVSeparator.
func NewDSVEncoder(sep string) *DSVEncoder {
	if sep == "" || sep == `\` || sep == `\\` {
		sep = DefaultDSVSeparator
	}
	// Order matters: the backslash is doubled before the separator rule
	// reintroduces single backslashes.
	rules := make([]rule, 0, len(dsvControlRules)+2)
	rules = append(rules, dsvControlRules...)
	rules = append(rules,
		rule{`\`, `\\`},
		rule{sep, `\` + sep},
	)
	return &DSVEncoder{sep: sep, rules: rules}
}

// Separator returns the separator placed between fields.
func (e *DSVEncoder) Separator() string {
	return e.sep
}

// EncodeField applies the escape table to one field, rule by rule.
func (e *DSVEncoder) EncodeField(value string) string {
	for _, r := range e.rules {
		value = strings.ReplaceAll(value, r.from, r.to)
	}
	return value
}

// EncodeLine escapes every field and joins them with the separator.
// The line carries no terminator.
func (e *DSVEncoder) EncodeLine(fields []string) (string, error) {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(e.sep)
		}
		sb.WriteString(e.EncodeField(f))
	}
	return sb.String(), nil
}

// LineSeparator is a single newline, so the last line is not terminated.
func (e *DSVEncoder) LineSeparator() string {
	return "\n"
}
