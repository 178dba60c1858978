// Package link builds query links: URLs that re-run a query and return the
// exported file, rendered for the context that asked for them.
package link

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/bisegni/qprint/pkg/export"
)

// Builder creates links to an export endpoint. Base parameters identify the
// query and are put on every link before the export parameters.
type Builder struct {
	endpoint *url.URL
	base     []param
}

type param struct {
	name, value string
}

var _ export.LinkBuilder = (*Builder)(nil)

// NewBuilder returns a Builder for the given endpoint URL.
func NewBuilder(endpoint string) (*Builder, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid link endpoint %q: %w", endpoint, err)
	}
	return &Builder{endpoint: u}, nil
}

// With returns a copy of b with an extra base parameter.
func (b *Builder) With(name, value string) *Builder {
	nb := &Builder{endpoint: b.endpoint, base: make([]param, 0, len(b.base)+1)}
	nb.base = append(nb.base, b.base...)
	nb.base = append(nb.base, param{name, value})
	return nb
}

// QueryLink starts a link with the given label.
func (b *Builder) QueryLink(label string) export.QueryLink {
	l := &QueryLink{label: label, endpoint: b.endpoint}
	l.params = append(l.params, b.base...)
	return l
}

// QueryLink is a labelled URL with ordered parameters.
type QueryLink struct {
	label    string
	endpoint *url.URL
	params   []param
}

// SetParameter sets name to value, replacing an earlier value.
func (l *QueryLink) SetParameter(value, name string) {
	for i := range l.params {
		if l.params[i].name == name {
			l.params[i].value = value
			return
		}
	}
	l.params = append(l.params, param{name, value})
}

// URL returns the link target. Parameters keep the order they were set in.
func (l *QueryLink) URL() string {
	var q strings.Builder
	if l.endpoint.RawQuery != "" {
		q.WriteString(l.endpoint.RawQuery)
	}
	for _, p := range l.params {
		if q.Len() > 0 {
			q.WriteByte('&')
		}
		q.WriteString(url.QueryEscape(p.name))
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(p.value))
	}
	u := *l.endpoint
	u.RawQuery = q.String()
	return u.String()
}

// Text renders the link: an anchor for HTML, an external link for wiki
// text and the bare URL otherwise.
func (l *QueryLink) Text(mode export.OutputMode) string {
	target := l.URL()
	switch mode {
	case export.ModeHTML:
		return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(target), html.EscapeString(l.label))
	case export.ModeWiki:
		return fmt.Sprintf("[%s %s]", target, l.label)
	}
	return target
}
