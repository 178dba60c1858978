package export

import (
	"strings"
	"testing"
)

// unescapeDSV reverses the backslash and separator rules.
func unescapeDSV(s, sep string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			rest := s[i+1:]
			switch {
			case strings.HasPrefix(rest, sep):
				sb.WriteString(sep)
				i += len(sep)
				continue
			case rest[0] == '\\':
				sb.WriteByte('\\')
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// splitDSV splits a line on unescaped separators and unescapes each field.
func splitDSV(line, sep string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			if strings.HasPrefix(line[i:], sep) {
				i += len(sep) - 1
			}
			continue
		}
		if strings.HasPrefix(line[i:], sep) {
			fields = append(fields, unescapeDSV(line[start:i], sep))
			i += len(sep) - 1
			start = i + 1
		}
	}
	return append(fields, unescapeDSV(line[start:], sep))
}

func TestDSVEncodeField(t *testing.T) {
	tests := []struct {
		name  string
		sep   string
		input string
		want  string
	}{
		{"plain", ":", "abc", "abc"},
		{"separator", ":", "a:b", `a\:b`},
		{"backslash", ":", `C:\path`, `C\:\\path`},
		{"backslash then separator", ":", `\:`, `\\\:`},
		{"multi-character separator", "||", "a||b|c", `a\||b|c`},
		{"real newline is kept", ":", "x\ny", "x\ny"},
		{"literal newline escape", ":", `x\ny`, "x\ny"},
		{"literal tab escape", ":", `x\ty`, "x\ty"},
		{"literal backspace escape", ":", `a\b`, "a\b"},
		{"literal form feed escape", ":", `a\f`, "a\f"},
		{"literal carriage return escape", ":", `a\r`, "a\r"},
		{"tab separator meets tab escape", "\t", `a\tb`, "a\\\tb"},
		{"empty", ":", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDSVEncoder(tt.sep).EncodeField(tt.input)
			if got != tt.want {
				t.Errorf("EncodeField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDSVEncodeFieldReversible(t *testing.T) {
	values := []string{
		"a:b",
		"::",
		`C:\path`,
		`x\\y`,
		`\`,
		`\:`,
		"end:",
		"",
		"a,b:c",
	}

	for _, sep := range []string{":", ";", "||", ","} {
		enc := NewDSVEncoder(sep)
		for _, v := range values {
			if got := unescapeDSV(enc.EncodeField(v), sep); got != v {
				t.Errorf("sep %q: round trip of %q gave %q", sep, v, got)
			}
		}
	}
}

func TestDSVLineSplitsBack(t *testing.T) {
	fields := []string{"a:b", `back\slash`, "", "plain", "trail:"}
	enc := NewDSVEncoder(":")
	line, err := enc.EncodeLine(fields)
	if err != nil {
		t.Fatalf("EncodeLine failed: %v", err)
	}
	if strings.HasSuffix(line, "\n") {
		t.Errorf("Expected no line terminator, got %q", line)
	}

	got := splitDSV(line, ":")
	if len(got) != len(fields) {
		t.Fatalf("Expected %d fields, got %d: %q", len(fields), len(got), got)
	}
	for i := range fields {
		if got[i] != fields[i] {
			t.Errorf("Field %d: expected %q, got %q", i, fields[i], got[i])
		}
	}
}

func TestDSVRejectsEscapePrefix(t *testing.T) {
	for _, sep := range []string{`\`, `\\`, ""} {
		if got := NewDSVEncoder(sep).Separator(); got != DefaultDSVSeparator {
			t.Errorf("NewDSVEncoder(%q) uses %q, want %q", sep, got, DefaultDSVSeparator)
		}
	}
}

func TestDSVLinesJoinedWithoutTrailingNewline(t *testing.T) {
	p := mustPrinter(t, FormatDSV, nil, nil)
	doc := materialize(t, p, people())
	if want := "Name:Age\nAlice:30,31"; doc.Text != want {
		t.Errorf("Expected %q, got %q", want, doc.Text)
	}
}
