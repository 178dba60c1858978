package parser

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func readAll(t *testing.T, p *Parser) []Record {
	t.Helper()
	var records []Record
	for {
		r, err := p.Read()
		if err == io.EOF {
			return records
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		records = append(records, r)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewParser(t *testing.T) {
	parser, err := NewParser(writeFile(t, "test.json", `[{"name": "Alice", "age": 30}]`))
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer parser.Close()

	if parser.IsJSONL() {
		t.Error("Expected JSON file to not be detected as JSONL")
	}
}

func TestReadJSONArray(t *testing.T) {
	parser, err := NewParser(writeFile(t, "test.json", `
	[{"name": "Alice", "age": 30}, {"name": "Bob", "age": 25}]`))
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	records := readAll(t, parser)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[1]["name"] != "Bob" {
		t.Errorf("Expected second record name to be Bob, got %v", records[1]["name"])
	}
}

func TestReadJSONL(t *testing.T) {
	content := `{"name": "Alice", "age": 30}

{"name": "Bob", "age": 25}
`
	parser, err := NewParser(writeFile(t, "test.jsonl", content))
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	if !parser.IsJSONL() {
		t.Error("Expected JSONL file to be detected as JSONL")
	}
	records := readAll(t, parser)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["name"] != "Alice" {
		t.Errorf("Expected first record name to be Alice, got %v", records[0]["name"])
	}
}

func TestReadJSONSingleObject(t *testing.T) {
	parser, err := NewParser(writeFile(t, "test.json", `{"name": "Alice", "age": 30}`))
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	records := readAll(t, parser)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0]["age"] != float64(30) {
		t.Errorf("Expected age 30, got %v", records[0]["age"])
	}
}

func TestReadJSONConcatenated(t *testing.T) {
	parser, err := NewParser(writeFile(t, "concat.json", `{"name": "Alice"}{"name": "Bob"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	if records := readAll(t, parser); len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

func TestReadInline(t *testing.T) {
	parser, err := NewParser(`[{"tags": ["a", "b"]}]`)
	if err != nil {
		t.Fatal(err)
	}
	tmp := parser.tmpFile

	records := readAll(t, parser)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if tags, ok := records[0]["tags"].([]interface{}); !ok || len(tags) != 2 {
		t.Errorf("Expected two tags, got %v", records[0]["tags"])
	}

	if err := parser.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Errorf("Expected temp file %s to be removed", tmp)
	}
}

func TestReadEmpty(t *testing.T) {
	for name, content := range map[string]string{"empty.json": "", "blank.json": "  \n", "array.json": "[]"} {
		parser, err := NewParser(writeFile(t, name, content))
		if err != nil {
			t.Fatal(err)
		}
		if records := readAll(t, parser); len(records) != 0 {
			t.Errorf("%s: expected no records, got %d", name, len(records))
		}
		parser.Close()
	}
}

func TestReadInvalid(t *testing.T) {
	parser, err := NewParser(writeFile(t, "bad.jsonl", "{\"a\": 1}\nnot json\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	if _, err := parser.Read(); err != nil {
		t.Fatalf("First read failed: %v", err)
	}
	if _, err := parser.Read(); err == nil || err == io.EOF {
		t.Errorf("Expected parse error, got %v", err)
	}
}
