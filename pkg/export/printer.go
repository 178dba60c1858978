package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bisegni/qprint/pkg/result"
)

// OutputMode is the rendering context a Printer is invoked for.
type OutputMode int

const (
	// ModeFile asks for the body itself.
	ModeFile OutputMode = iota
	// ModeHTML asks for an HTML link to the body.
	ModeHTML
	// ModeWiki asks for a wiki-text link to the body.
	ModeWiki
)

func (m OutputMode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeHTML:
		return "html"
	case ModeWiki:
		return "wiki"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseOutputMode maps a mode name to an OutputMode.
func ParseOutputMode(name string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "file", "":
		return ModeFile, nil
	case "html":
		return ModeHTML, nil
	case "wiki":
		return ModeWiki, nil
	}
	return ModeFile, fmt.Errorf("unknown output mode %q", name)
}

// QueryLink is a link to a query that can be re-run with parameters.
type QueryLink interface {
	// SetParameter sets the named parameter of the link.
	SetParameter(value, name string)
	// Text renders the link for the given mode.
	Text(mode OutputMode) string
}

// LinkBuilder creates query links for deferred output.
type LinkBuilder interface {
	QueryLink(label string) QueryLink
}

// Output is the result of Printer.Print: either a *Document or a *Link.
type Output interface {
	output()
}

// Document is a materialized body.
type Document struct {
	MimeType string
	FileName string
	Text     string
	// Rows is the number of data rows written, header excluded.
	Rows int
}

// Param is one named link parameter.
type Param struct {
	Name  string
	Value string
}

// Link describes how to obtain the body later.
type Link struct {
	Label  string
	Params []Param
	// Text is the rendered link, empty when no LinkBuilder was configured.
	Text string
	// HTML reports whether Text is HTML.
	HTML bool
}

func (*Document) output() {}
func (*Link) output()     {}

// Param returns the value of the named parameter.
func (l *Link) Param(name string) (string, bool) {
	for _, p := range l.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Printer serializes query results according to its Options. It holds no
// per-call state and may be shared.
type Printer struct {
	opts  Options
	links LinkBuilder
}

// NewPrinter validates opts and returns a Printer. links may be nil, in
// which case deferred output carries parameters but no rendered text.
func NewPrinter(opts *Options, links LinkBuilder) (*Printer, error) {
	if opts == nil {
		return nil, fmt.Errorf("nil options")
	}
	p := &Printer{opts: *opts, links: links}
	if _, err := p.newEncoder(); err != nil {
		return nil, err
	}
	return p, nil
}

// Options returns a copy of the printer options.
func (p *Printer) Options() Options {
	return p.opts
}

func (p *Printer) newEncoder() (Encoder, error) {
	switch p.opts.Format {
	case FormatCSV:
		return newCSVEncoderFor(&p.opts)
	case FormatDSV:
		return NewDSVEncoder(p.opts.Separator), nil
	}
	return nil, &ParamError{Param: ParamFormat, Value: string(p.opts.Format), Reason: "unknown format (expected csv or dsv)"}
}

// Print renders res for mode. ModeFile walks res and returns a *Document;
// every other mode leaves res untouched and returns a *Link.
func (p *Printer) Print(res result.QueryResult, mode OutputMode) (Output, error) {
	if mode != ModeFile {
		return p.link(mode), nil
	}
	var sb strings.Builder
	rows, err := p.write(&sb, res)
	if err != nil {
		return nil, err
	}
	return &Document{
		MimeType: p.opts.MimeType(),
		FileName: p.opts.FileName(),
		Text:     sb.String(),
		Rows:     rows,
	}, nil
}

// Write streams the materialized body of res to w and reports the number
// of data rows written.
func (p *Printer) Write(w io.Writer, res result.QueryResult) (int, error) {
	bw := bufio.NewWriter(w)
	rows, err := p.write(bw, res)
	if err != nil {
		return rows, err
	}
	return rows, bw.Flush()
}

func (p *Printer) write(w io.StringWriter, res result.QueryResult) (int, error) {
	enc, err := p.newEncoder()
	if err != nil {
		return 0, err
	}
	sep := enc.LineSeparator()
	lines, rows := 0, 0
	err = Walk(res, p.opts.ShowHeaders, func(line []string) error {
		s, err := enc.EncodeLine(line)
		if err != nil {
			return err
		}
		if lines > 0 && sep != "" {
			if _, err := w.WriteString(sep); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(s); err != nil {
			return err
		}
		lines++
		return nil
	})
	rows = lines
	if p.opts.ShowHeaders && rows > 0 {
		rows--
	}
	return rows, err
}

func (p *Printer) link(mode OutputMode) *Link {
	label := p.opts.SearchLabel
	if label == "" {
		label = strings.ToUpper(string(p.opts.Format))
	}
	l := &Link{Label: label, HTML: mode == ModeHTML}

	l.Params = append(l.Params,
		Param{ParamFormat, string(p.opts.Format)},
		Param{ParamSep, p.opts.Separator},
	)
	if p.opts.MainLabel != "" {
		l.Params = append(l.Params, Param{ParamMainLabel, p.opts.MainLabel})
	}
	l.Params = append(l.Params, Param{ParamHeaders, p.opts.Headers()})
	limit := p.opts.Limit
	if limit <= 0 {
		limit = DefaultLinkLimit
	}
	l.Params = append(l.Params, Param{ParamLimit, strconv.Itoa(limit)})

	if p.links != nil {
		ql := p.links.QueryLink(label)
		for _, prm := range l.Params {
			ql.SetParameter(prm.Value, prm.Name)
		}
		l.Text = ql.Text(mode)
	}
	return l
}
