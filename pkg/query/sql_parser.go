package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Field represents a selected path with its output label
type Field struct {
	Path  string
	Alias string
}

func (f Field) String() string {
	if f.Alias != "" && f.Alias != f.Path {
		return f.Path + " AS " + f.Alias
	}
	return f.Path
}

// SelectQuery is the parsed form of a SELECT statement
type SelectQuery struct {
	Fields    []Field
	FromTable string       // Named dataset, empty for the default input
	FromQuery *SelectQuery // Subquery used as the input
	Filter    Expression   // Compiled expression tree for the WHERE clause
	Where     string       // WHERE clause as written
	Limit     int          // -1 when the query has no LIMIT
}

// Star reports whether the query selects every top-level field.
func (q *SelectQuery) Star() bool {
	return len(q.Fields) == 1 && q.Fields[0].Path == Wildcard
}

// Lexer definition
var (
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\b(SELECT|FROM|WHERE|LIMIT|AS|AND|OR|TRUE|FALSE|CONTAINS)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?`},
		{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
		{Name: "Operator", Pattern: `>=|<=|!=|~=|[=<>]`},
		{Name: "Punct", Pattern: `[*,.()]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	sqlParser = participle.MustBuild[ASTSelect](
		participle.Lexer(sqlLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// ParseQuery parses a SELECT statement
func ParseQuery(input string) (*SelectQuery, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty query")
	}

	ast, err := sqlParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return ast.ToSelectQuery()
}
