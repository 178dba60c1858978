package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"
)

// Encoder turns one line of field strings into text.
type Encoder interface {
	// EncodeLine returns the encoded line including any terminator the
	// format puts after every line.
	EncodeLine(fields []string) (string, error)

	// LineSeparator is written between two consecutive lines.
	LineSeparator() string
}

// CSVEncoder encodes lines as CSV. A field is quoted when it contains the
// separator, a double quote or a line break; embedded quotes are doubled.
type CSVEncoder struct {
	comma rune
	buf   bytes.Buffer
	csv   *csv.Writer
}

var _ Encoder = (*CSVEncoder)(nil)

// NewCSVEncoder returns an encoder using sep between fields.
func NewCSVEncoder(sep rune) (*CSVEncoder, error) {
	if !validDelim(sep) {
		return nil, fmt.Errorf("invalid CSV separator %q", sep)
	}
	e := &CSVEncoder{comma: sep}
	e.csv = csv.NewWriter(&e.buf)
	e.csv.Comma = sep
	return e, nil
}

func newCSVEncoderFor(o *Options) (*CSVEncoder, error) {
	r, size := utf8.DecodeRuneInString(o.Separator)
	if size == 0 || size != len(o.Separator) {
		return nil, fmt.Errorf("invalid CSV separator %q", o.Separator)
	}
	return NewCSVEncoder(r)
}

// EncodeLine encodes fields as one newline-terminated CSV record.
// A record made of a single empty field is written as "" so that readers,
// which skip blank lines, still see it.
func (e *CSVEncoder) EncodeLine(fields []string) (string, error) {
	if len(fields) == 1 && fields[0] == "" {
		return `""` + "\n", nil
	}
	e.buf.Reset()
	if err := e.csv.Write(fields); err != nil {
		return "", err
	}
	e.csv.Flush()
	if err := e.csv.Error(); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

// LineSeparator is empty: every CSV line carries its own terminator.
func (e *CSVEncoder) LineSeparator() string {
	return ""
}
