package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record represents a single JSON object
type Record map[string]interface{}

// maxLineSize bounds a single JSONL record.
const maxLineSize = 16 * 1024 * 1024

// Parser streams records out of JSON and JSONL input
type Parser struct {
	file    *os.File
	isJSONL bool
	tmpFile string // Path to temporary file, if created

	// Stateful readers
	decoder   *json.Decoder
	scanner   *bufio.Scanner
	bufReader *bufio.Reader

	startArrayChecked bool
	inArray           bool
}

// NewParser creates a new parser for the given source.
// Special cases:
// - Empty string or "-" reads from stdin
// - Strings starting with '{' or '[' are treated as inline JSON
// - Names ending in .jsonl are read line by line
func NewParser(source string) (*Parser, error) {
	p := &Parser{}

	switch {
	case isInline(source):
		f, err := spool(source)
		if err != nil {
			return nil, err
		}
		p.file = f
		p.tmpFile = f.Name()
	case source == "" || source == "-":
		p.file = os.Stdin
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		p.file = f
		p.isJSONL = strings.HasSuffix(source, ".jsonl")
	}

	if p.isJSONL {
		p.scanner = bufio.NewScanner(p.file)
		p.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	} else {
		// bufio.Reader allows peeking for the array start
		p.bufReader = bufio.NewReader(p.file)
		p.decoder = json.NewDecoder(p.bufReader)
	}
	return p, nil
}

func isInline(source string) bool {
	s := strings.TrimSpace(source)
	return len(s) > 0 && (s[0] == '{' || s[0] == '[')
}

// spool writes inline JSON to a temporary file so it is read like any other source.
func spool(inline string) (*os.File, error) {
	f, err := os.CreateTemp("", "qprint-inline-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(inline); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write inline JSON: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to seek: %w", err)
	}
	return f, nil
}

// Close closes the underlying file and cleans up any temporary files
func (p *Parser) Close() error {
	var err error
	if p.file != os.Stdin {
		err = p.file.Close()
	}
	if p.tmpFile != "" {
		os.Remove(p.tmpFile)
	}
	return err
}

// IsJSONL returns whether the parser is treating the input as JSONL
func (p *Parser) IsJSONL() bool {
	return p.isJSONL
}

// Read reads the next record. It returns io.EOF when the input is exhausted.
func (p *Parser) Read() (Record, error) {
	if p.isJSONL {
		return p.readLine()
	}

	if !p.startArrayChecked {
		if err := p.checkArrayStart(); err != nil {
			return nil, err
		}
	}

	if p.inArray && !p.decoder.More() {
		// Consume closing ']'
		t, err := p.decoder.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := t.(json.Delim); ok && delim == ']' {
			p.inArray = false
			return nil, io.EOF
		}
		return nil, fmt.Errorf("expected array end, got %v", t)
	}

	var record Record
	if err := p.decoder.Decode(&record); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode JSON record: %w", err)
	}
	return record, nil
}

func (p *Parser) readLine() (Record, error) {
	for p.scanner.Scan() {
		line := bytes.TrimSpace(p.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSONL record: %w", err)
		}
		return record, nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading JSONL input: %w", err)
	}
	return nil, io.EOF
}

// checkArrayStart peeks the first non-whitespace byte and, for a top-level
// array, lets the decoder consume '[' so that it tracks element commas.
func (p *Parser) checkArrayStart() error {
	for {
		b, err := p.bufReader.Peek(1)
		if err != nil {
			return err
		}
		switch b[0] {
		case ' ', '\n', '\t', '\r':
			p.bufReader.ReadByte()
			continue
		case '[':
			if _, err := p.decoder.Token(); err != nil {
				return err
			}
			p.inArray = true
		}
		p.startArrayChecked = true
		return nil
	}
}
