package export

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Format selects the output flavor.
type Format string

const (
	FormatCSV Format = "csv"
	FormatDSV Format = "dsv"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatDSV:
		return FormatDSV, nil
	}
	return "", &ParamError{Param: ParamFormat, Value: name, Reason: "unknown format (expected csv or dsv)"}
}

// Parameter names accepted by ParseParams.
const (
	ParamFormat      = "format"
	ParamSep         = "sep"
	ParamSeparator   = "separator"
	ParamFilename    = "filename"
	ParamHeaders     = "headers"
	ParamLimit       = "limit"
	ParamMainLabel   = "mainlabel"
	ParamSearchLabel = "searchlabel"
)

const (
	DefaultCSVSeparator = ","
	DefaultDSVSeparator = ":"
	DefaultCSVFileName  = "result.csv"
	DefaultDSVFileName  = "result.dsv"

	// DefaultLinkLimit is put on links when no limit was configured.
	DefaultLinkLimit = 100

	HeadersShow = "show"
	HeadersHide = "hide"
)

// Options is the validated configuration of a Printer.
type Options struct {
	Format Format

	// Separator is the normalized separator: one character for CSV,
	// any non-empty string for DSV.
	Separator string

	ShowHeaders bool

	// Limit is the result size limit passed on to links. Zero means unset.
	Limit int

	// MainLabel is passed through to links when not empty.
	MainLabel string

	// SearchLabel replaces the default link label when not empty.
	SearchLabel string

	fileName string
}

// DefaultOptions returns the options used when no parameter is given.
func DefaultOptions(format Format) *Options {
	o := &Options{
		Format:      format,
		ShowHeaders: true,
	}
	if format == FormatDSV {
		o.Separator = DefaultDSVSeparator
		o.fileName = DefaultDSVFileName
	} else {
		o.Separator = DefaultCSVSeparator
		o.fileName = DefaultCSVFileName
	}
	return o
}

// ParseParams builds Options from keyed parameters, as they arrive from a
// query string or from the command line. Unknown keys are ignored.
//
// A DSV separator equal to the escape prefix is ignored rather than
// rejected: the alias is tried next, then the default.
func ParseParams(format Format, params map[string]string) (*Options, error) {
	if format != FormatCSV && format != FormatDSV {
		return nil, &ParamError{Param: ParamFormat, Value: string(format), Reason: "unknown format (expected csv or dsv)"}
	}
	o := DefaultOptions(format)

	switch format {
	case FormatCSV:
		if sep, ok := params[ParamSep]; ok {
			sep = strings.ReplaceAll(sep, "_", " ")
			if err := checkCSVSeparator(sep); err != nil {
				return nil, &ParamError{Param: ParamSep, Value: sep, Reason: err.Error()}
			}
			o.Separator = sep
		}
	case FormatDSV:
		if sep, ok := dsvSeparator(params, ParamSeparator); ok {
			o.Separator = sep
		} else if sep, ok := dsvSeparator(params, ParamSep); ok {
			o.Separator = sep
		}
		if name, ok := params[ParamFilename]; ok && name != "" {
			o.fileName = strings.ReplaceAll(name, " ", "_")
		}
	}

	if h, ok := params[ParamHeaders]; ok {
		o.ShowHeaders = !strings.EqualFold(strings.TrimSpace(h), HeadersHide)
	}

	if l, ok := params[ParamLimit]; ok && strings.TrimSpace(l) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(l))
		if err != nil || n < 0 {
			return nil, &ParamError{Param: ParamLimit, Value: l, Reason: "must be a non-negative integer"}
		}
		o.Limit = n
	}

	o.MainLabel = params[ParamMainLabel]
	o.SearchLabel = params[ParamSearchLabel]
	return o, nil
}

// dsvSeparator returns the trimmed separator under key unless it is empty
// or collides with the escape prefix. Trimming also removes a whitespace
// separator such as a tab, which then falls back like an empty value.
func dsvSeparator(params map[string]string, key string) (string, bool) {
	raw, ok := params[key]
	if !ok {
		return "", false
	}
	sep := strings.TrimSpace(raw)
	if sep == "" || sep == `\` || sep == `\\` {
		return "", false
	}
	return sep, true
}

func checkCSVSeparator(sep string) error {
	if utf8.RuneCountInString(sep) != 1 {
		return fmt.Errorf("must be exactly one character")
	}
	r, _ := utf8.DecodeRuneInString(sep)
	if !validDelim(r) {
		return fmt.Errorf("cannot be used as a CSV separator")
	}
	return nil
}

// validDelim mirrors the delimiter rules of encoding/csv.
func validDelim(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// MimeType is the content type of a materialized body.
func (o *Options) MimeType() string {
	if o.Format == FormatDSV {
		return "text/dsv"
	}
	return "text/csv"
}

// FileName is the suggested file name of a materialized body.
func (o *Options) FileName() string {
	if o.fileName == "" {
		return DefaultOptions(o.Format).fileName
	}
	return o.fileName
}

// Headers renders ShowHeaders as a parameter value.
func (o *Options) Headers() string {
	if o.ShowHeaders {
		return HeadersShow
	}
	return HeadersHide
}

// Params renders the options back to keyed parameters that ParseParams
// accepts. The limit is only present when set.
func (o *Options) Params() map[string]string {
	p := map[string]string{
		ParamFormat:  string(o.Format),
		ParamSep:     o.Separator,
		ParamHeaders: o.Headers(),
	}
	if o.Format == FormatDSV {
		p[ParamFilename] = o.FileName()
	}
	if o.Limit > 0 {
		p[ParamLimit] = strconv.Itoa(o.Limit)
	}
	if o.MainLabel != "" {
		p[ParamMainLabel] = o.MainLabel
	}
	if o.SearchLabel != "" {
		p[ParamSearchLabel] = o.SearchLabel
	}
	return p
}
