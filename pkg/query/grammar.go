package query

import (
	"fmt"
	"strings"
)

// AST for Participle Parser

type ASTSelect struct {
	SelectFields []*ASTSelectField `parser:"'SELECT' @@ (',' @@)*"`
	From         *ASTFromClause    `parser:"('FROM' @@)?"`
	Where        *ASTExpression    `parser:"('WHERE' @@)?"`
	Limit        *int              `parser:"('LIMIT' @Number)?"`
}

type ASTSelectField struct {
	Value *ASTValue `parser:"@@"`
	Alias string    `parser:"('AS' (@Ident | @String))?"`
}

type ASTFromClause struct {
	TableName *string    `parser:"  (@Ident | @String)"`
	SubQuery  *ASTSelect `parser:"| '(' @@ ')'"`
}

type ASTExpression struct {
	Or []*ASTOrCondition `parser:"@@ ('OR' @@)*"`
}

type ASTOrCondition struct {
	And []*ASTCondition `parser:"@@ ('AND' @@)*"`
}

type ASTCondition struct {
	Grouped *ASTExpression      `parser:"  '(' @@ ')'"`
	Simple  *ASTSimpleCondition `parser:"| @@"`
}

type ASTSimpleCondition struct {
	Operand *ASTValue   `parser:"@@"`
	Op      string      `parser:"@('='|'!='|'>='|'<='|'>'|'<'|'~='|'CONTAINS')"`
	Value   *ASTLiteral `parser:"@@"`
}

type ASTValue struct {
	// Ident or "*" separated by "."
	Parts []string `parser:"(@Ident | @'*' | @Number) ('.' (@Ident | @'*' | @Number))*"`
}

func (v *ASTValue) String() string {
	return strings.Join(v.Parts, ".")
}

type ASTLiteral struct {
	Number *float64 `parser:"  @Number"`
	StrVal *string  `parser:"| @String"`
	Bool   *string  `parser:"| @('TRUE'|'FALSE')"`
}

// Helpers

func (s *ASTSelect) ToSelectQuery() (*SelectQuery, error) {
	sq := &SelectQuery{Limit: -1}

	for _, f := range s.SelectFields {
		path := f.Value.String()
		alias := f.Alias
		if alias == "" {
			alias = path
		}
		sq.Fields = append(sq.Fields, Field{Path: path, Alias: alias})
	}

	if s.From != nil {
		if s.From.TableName != nil {
			sq.FromTable = *s.From.TableName
		} else if s.From.SubQuery != nil {
			sub, err := s.From.SubQuery.ToSelectQuery()
			if err != nil {
				return nil, err
			}
			sq.FromQuery = sub
		}
	}

	if s.Where != nil {
		sq.Filter = s.Where.ToExpression()
		sq.Where = s.Where.String()
	}

	if s.Limit != nil {
		if *s.Limit < 0 {
			return nil, fmt.Errorf("LIMIT must not be negative, got %d", *s.Limit)
		}
		sq.Limit = *s.Limit
	}
	return sq, nil
}

func (e *ASTExpression) String() string {
	var parts []string
	for _, or := range e.Or {
		parts = append(parts, or.String())
	}
	return strings.Join(parts, " OR ")
}

func (o *ASTOrCondition) String() string {
	var parts []string
	for _, and := range o.And {
		parts = append(parts, and.String())
	}
	return strings.Join(parts, " AND ")
}

func (c *ASTCondition) String() string {
	if c.Grouped != nil {
		return "(" + c.Grouped.String() + ")"
	}
	if c.Simple != nil {
		return c.Simple.Operand.String() + " " + strings.ToUpper(c.Simple.Op) + " " + c.Simple.Value.String()
	}
	return ""
}

func (l *ASTLiteral) String() string {
	if l.Number != nil {
		return fmt.Sprintf("%v", *l.Number)
	}
	if l.StrVal != nil {
		return fmt.Sprintf("'%s'", *l.StrVal)
	}
	if l.Bool != nil {
		return strings.ToUpper(*l.Bool)
	}
	return ""
}

func (l *ASTLiteral) ToValue() interface{} {
	if l.Number != nil {
		return *l.Number
	}
	if l.StrVal != nil {
		return *l.StrVal
	}
	if l.Bool != nil {
		return strings.EqualFold(*l.Bool, "TRUE")
	}
	return nil
}

// Map AST to Expression interface

func (e *ASTExpression) ToExpression() Expression {
	if len(e.Or) == 0 {
		return nil
	}
	var expr Expression = e.Or[0].ToExpression()
	for i := 1; i < len(e.Or); i++ {
		expr = &OrExpression{
			Left:  expr,
			Right: e.Or[i].ToExpression(),
		}
	}
	return expr
}

func (o *ASTOrCondition) ToExpression() Expression {
	if len(o.And) == 0 {
		return nil
	}
	var expr Expression = o.And[0].ToExpression()
	for i := 1; i < len(o.And); i++ {
		expr = &AndExpression{
			Left:  expr,
			Right: o.And[i].ToExpression(),
		}
	}
	return expr
}

func (c *ASTCondition) ToExpression() Expression {
	if c.Grouped != nil {
		return c.Grouped.ToExpression()
	}
	if c.Simple != nil {
		return &Condition{
			Filter: NewFilter(c.Simple.Operand.String(), c.Simple.Op, c.Simple.Value.ToValue()),
		}
	}
	return nil
}
