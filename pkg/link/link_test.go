package link

import (
	"net/url"
	"testing"

	"github.com/bisegni/qprint/pkg/export"
	"github.com/bisegni/qprint/pkg/result"
)

func TestQueryLinkURL(t *testing.T) {
	b, err := NewBuilder("http://localhost:8080/export")
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	l := b.With("dataset", "people").With("q", "SELECT name").QueryLink("CSV").(*QueryLink)
	l.SetParameter("csv", "format")
	l.SetParameter(";", "sep")
	l.SetParameter("csv", "format")

	want := "http://localhost:8080/export?dataset=people&q=SELECT+name&format=csv&sep=%3B"
	if got := l.URL(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestQueryLinkText(t *testing.T) {
	b, _ := NewBuilder("/export?token=a&b")
	l := b.QueryLink(`Get "it"`)
	l.SetParameter("dsv", "format")

	tests := []struct {
		mode export.OutputMode
		want string
	}{
		{export.ModeHTML, `<a href="/export?token=a&amp;b&amp;format=dsv">Get &#34;it&#34;</a>`},
		{export.ModeWiki, `[/export?token=a&b&format=dsv Get "it"]`},
		{export.ModeFile, `/export?token=a&b&format=dsv`},
	}
	for _, tt := range tests {
		if got := l.Text(tt.mode); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.mode, tt.want, got)
		}
	}
}

func TestBuilderWithPrinter(t *testing.T) {
	b, _ := NewBuilder("https://example.org/export")
	opts, err := export.ParseParams(export.FormatCSV, map[string]string{"sep": ";", "mainlabel": "Item"})
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	p, err := export.NewPrinter(opts, b.With("dataset", "inventory"))
	if err != nil {
		t.Fatalf("NewPrinter failed: %v", err)
	}

	out, err := p.Print(&result.Slice{Columns: result.Labels("a")}, export.ModeWiki)
	if err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	l := out.(*export.Link)

	want := "[https://example.org/export?dataset=inventory&format=csv&sep=%3B&mainlabel=Item&headers=show&limit=100 CSV]"
	if l.Text != want {
		t.Errorf("Expected %q, got %q", want, l.Text)
	}

	u, err := url.Parse(l.Text[1 : len(l.Text)-len(" CSV]")])
	if err != nil {
		t.Fatalf("Link URL does not parse: %v", err)
	}
	back := make(map[string]string)
	for k, v := range u.Query() {
		back[k] = v[0]
	}
	again, err := export.ParseParams(export.FormatCSV, back)
	if err != nil {
		t.Fatalf("ParseParams of link parameters failed: %v", err)
	}
	if again.Separator != ";" || again.Limit != 100 || again.MainLabel != "Item" {
		t.Errorf("Unexpected options from link: %+v", again)
	}
}
