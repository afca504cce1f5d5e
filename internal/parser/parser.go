// Package parser implements a recursive-descent parser for CREATE TABLE
// batches. It consumes the lexer's token stream, normalizes inline and
// table-level constraints into one representation, and produces a validated
// schema.
//
// Parsing is fail-fast: the first structural error aborts the whole batch.
// A malformed schema silently accepted here would break every type-safety
// guarantee downstream, so no partial output is ever returned.
package parser

import (
	"fmt"
	"strings"

	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/internal/lexer"
	"github.com/nordql/ddlq/schema"
)

// ParseError reports a structural DDL violation. Stmt is the 1-based index
// of the offending statement in the batch; Offset is the byte offset of the
// offending token in the original input.
type ParseError struct {
	Stmt   int
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in statement %d at byte %d: %s", e.Stmt, e.Offset, e.Reason)
}

// Parse tokenizes and parses a DDL batch into a validated schema. The batch
// is split on top-level semicolons; every statement must be a CREATE TABLE.
// Foreign keys may reference tables declared later in the batch; they are
// resolved in a post-pass once all tables are known.
func Parse(ddl string, rules *dialect.Rules) (*schema.Schema, error) {
	tokens, err := lexer.Tokenize(ddl, rules)
	if err != nil {
		return nil, err
	}

	var tables []schema.Table
	for i, stmt := range splitStatements(tokens) {
		p := &parser{tokens: stmt, stmt: i + 1, rules: rules}
		table, err := p.parseCreateTable()
		if err != nil {
			return nil, err
		}
		tables = append(tables, *table)
	}

	return schema.New(tables)
}

// splitStatements splits the token stream on top-level semicolons. Empty
// statements (stray or trailing semicolons) are dropped.
func splitStatements(tokens []lexer.Token) [][]lexer.Token {
	var stmts [][]lexer.Token
	var cur []lexer.Token
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
		case lexer.Semicolon:
			if depth == 0 {
				if len(cur) > 0 {
					stmts = append(stmts, cur)
					cur = nil
				}
				continue
			}
		case lexer.EOF:
			if len(cur) > 0 {
				stmts = append(stmts, cur)
			}
			return stmts
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		stmts = append(stmts, cur)
	}
	return stmts
}

// parser is a cursor over the tokens of a single statement.
type parser struct {
	tokens []lexer.Token
	pos    int
	stmt   int
	rules  *dialect.Rules
}

func (p *parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		end := 0
		if n := len(p.tokens); n > 0 {
			end = p.tokens[n-1].Offset
		}
		return lexer.Token{Kind: lexer.EOF, Offset: end}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *parser) errf(tok lexer.Token, format string, args ...any) error {
	return &ParseError{Stmt: p.stmt, Offset: tok.Offset, Reason: fmt.Sprintf(format, args...)}
}

// matchKeyword consumes the current token if it is the given keyword.
func (p *parser) matchKeyword(word string) bool {
	tok := p.cur()
	if tok.Kind == lexer.Keyword && tok.Upper() == word {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectKeyword(word string) error {
	tok := p.cur()
	if tok.Kind != lexer.Keyword || tok.Upper() != word {
		return p.errf(tok, "expected %s, found %s %q", word, tok.Kind, tok.Text)
	}
	p.pos++
	return nil
}

func (p *parser) expectKind(kind lexer.Kind) (lexer.Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return tok, p.errf(tok, "expected %s, found %s %q", kind, tok.Kind, tok.Text)
	}
	p.pos++
	return tok, nil
}

func (p *parser) parseCreateTable() (*schema.Table, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(lexer.Ident)
	if err != nil {
		return nil, err
	}
	table := &schema.Table{Name: nameTok.Text}

	if _, err := p.expectKind(lexer.LParen); err != nil {
		return nil, err
	}
	for {
		if err := p.parseTableClause(table); err != nil {
			return nil, err
		}
		tok := p.advance()
		if tok.Kind == lexer.RParen {
			break
		}
		if tok.Kind != lexer.Comma {
			return nil, p.errf(tok, "expected ',' or ')' after table clause, found %s %q", tok.Kind, tok.Text)
		}
	}
	if tok := p.cur(); tok.Kind != lexer.EOF {
		return nil, p.errf(tok, "unexpected %s %q after CREATE TABLE body", tok.Kind, tok.Text)
	}

	// Primary key membership forces NOT NULL regardless of how the column
	// was declared.
	for _, pk := range table.PrimaryKey {
		for i := range table.Columns {
			if table.Columns[i].Name == pk {
				table.Columns[i].Nullable = false
			}
		}
	}
	return table, nil
}

// parseTableClause parses one comma-separated clause of the table body:
// a column definition, a PRIMARY KEY clause, a FOREIGN KEY clause
// (optionally named via CONSTRAINT), or a table-level UNIQUE clause.
func (p *parser) parseTableClause(table *schema.Table) error {
	tok := p.cur()
	switch {
	case tok.Kind == lexer.Keyword && tok.Upper() == "PRIMARY":
		p.pos++
		return p.parsePrimaryKeyClause(table, tok)
	case tok.Kind == lexer.Keyword && tok.Upper() == "CONSTRAINT":
		p.pos++
		if _, err := p.expectKind(lexer.Ident); err != nil {
			return err
		}
		fkTok := p.cur()
		if !p.matchKeyword("FOREIGN") {
			return p.errf(fkTok, "expected FOREIGN KEY after CONSTRAINT name")
		}
		return p.parseForeignKeyClause(table, fkTok)
	case tok.Kind == lexer.Keyword && tok.Upper() == "FOREIGN":
		p.pos++
		return p.parseForeignKeyClause(table, tok)
	case tok.Kind == lexer.Keyword && tok.Upper() == "UNIQUE":
		p.pos++
		return p.parseUniqueClause(table)
	case tok.Kind == lexer.Ident:
		return p.parseColumnDef(table)
	default:
		return p.errf(tok, "expected column definition or constraint, found %s %q", tok.Kind, tok.Text)
	}
}

func (p *parser) parsePrimaryKeyClause(table *schema.Table, start lexer.Token) error {
	if err := p.expectKeyword("KEY"); err != nil {
		return err
	}
	if len(table.PrimaryKey) > 0 {
		return p.errf(start, "table %q has more than one primary key", table.Name)
	}
	cols, err := p.parseIdentList()
	if err != nil {
		return err
	}
	for _, col := range cols {
		if _, ok := table.Column(col); !ok {
			return p.errf(start, "primary key references undeclared column %q", col)
		}
	}
	table.PrimaryKey = cols
	return nil
}

func (p *parser) parseForeignKeyClause(table *schema.Table, start lexer.Token) error {
	if err := p.expectKeyword("KEY"); err != nil {
		return err
	}
	local, err := p.parseIdentList()
	if err != nil {
		return err
	}
	for _, col := range local {
		if _, ok := table.Column(col); !ok {
			return p.errf(start, "foreign key references undeclared column %q", col)
		}
	}
	if err := p.expectKeyword("REFERENCES"); err != nil {
		return err
	}
	refTable, err := p.expectKind(lexer.Ident)
	if err != nil {
		return err
	}
	refCols, err := p.parseIdentList()
	if err != nil {
		return err
	}
	if len(local) != len(refCols) {
		return p.errf(start, "foreign key has %d local columns but %d referenced columns",
			len(local), len(refCols))
	}

	action := schema.NoAction
	if p.matchKeyword("ON") {
		if err := p.expectKeyword("DELETE"); err != nil {
			return err
		}
		action, err = p.parseCascadeAction()
		if err != nil {
			return err
		}
	}

	table.ForeignKeys = append(table.ForeignKeys, schema.ForeignKey{
		Columns:    local,
		RefTable:   refTable.Text,
		RefColumns: refCols,
		OnDelete:   action,
	})
	return nil
}

func (p *parser) parseCascadeAction() (schema.CascadeAction, error) {
	tok := p.advance()
	switch tok.Upper() {
	case "CASCADE":
		return schema.Cascade, nil
	case "RESTRICT":
		return schema.Restrict, nil
	case "SET":
		if err := p.expectKeyword("NULL"); err != nil {
			return schema.NoAction, err
		}
		return schema.SetNull, nil
	case "NO":
		if err := p.expectKeyword("ACTION"); err != nil {
			return schema.NoAction, err
		}
		return schema.NoAction, nil
	default:
		return schema.NoAction, p.errf(tok, "expected CASCADE, SET NULL, RESTRICT, or NO ACTION, found %q", tok.Text)
	}
}

// parseUniqueClause marks the listed, already-declared columns unique.
func (p *parser) parseUniqueClause(table *schema.Table) error {
	start := p.cur()
	cols, err := p.parseIdentList()
	if err != nil {
		return err
	}
	for _, col := range cols {
		found := false
		for i := range table.Columns {
			if table.Columns[i].Name == col {
				table.Columns[i].Unique = true
				found = true
			}
		}
		if !found {
			return p.errf(start, "unique constraint references undeclared column %q", col)
		}
	}
	return nil
}

// parseIdentList reads a parenthesized, comma-separated identifier list:
// ( ident [, ident]* ). The list must contain at least one identifier.
func (p *parser) parseIdentList() ([]string, error) {
	if _, err := p.expectKind(lexer.LParen); err != nil {
		return nil, err
	}
	var names []string
	for {
		tok, err := p.expectKind(lexer.Ident)
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Text)
		next := p.advance()
		if next.Kind == lexer.RParen {
			return names, nil
		}
		if next.Kind != lexer.Comma {
			return nil, p.errf(next, "expected ',' or ')' in column list, found %s %q", next.Kind, next.Text)
		}
	}
}

func (p *parser) parseColumnDef(table *schema.Table) error {
	nameTok, err := p.expectKind(lexer.Ident)
	if err != nil {
		return err
	}
	if _, ok := table.Column(nameTok.Text); ok {
		return p.errf(nameTok, "duplicate column %q", nameTok.Text)
	}

	rawType, err := p.parseTypeName()
	if err != nil {
		return err
	}
	resolved, err := p.rules.Resolve(rawType)
	if err != nil {
		// Unknown types are terminal. Degrading to a generic type here
		// would defeat the typed column handles built on this schema.
		return fmt.Errorf("statement %d: column %q: %w", p.stmt, nameTok.Text, err)
	}

	col := schema.Column{
		Name:     nameTok.Text,
		RawType:  rawType,
		Type:     resolved,
		Nullable: true,
	}
	if err := p.parseColumnConstraints(table, &col); err != nil {
		return err
	}
	table.Columns = append(table.Columns, col)
	return nil
}

// parseTypeName reads the raw type token: a base name, an optional second
// word when the pair is a known multi-word type (DOUBLE PRECISION,
// CHARACTER VARYING), and optional numeric arguments.
func (p *parser) parseTypeName() (string, error) {
	first, err := p.expectKind(lexer.Ident)
	if err != nil {
		return "", err
	}
	name := first.Text
	if next := p.cur(); next.Kind == lexer.Ident && p.rules.HasType(name+" "+next.Text) {
		name += " " + next.Text
		p.pos++
	}

	if p.cur().Kind != lexer.LParen {
		return name, nil
	}
	p.pos++
	var args []string
	for {
		num, err := p.expectKind(lexer.Number)
		if err != nil {
			return "", err
		}
		args = append(args, num.Text)
		tok := p.advance()
		if tok.Kind == lexer.RParen {
			break
		}
		if tok.Kind != lexer.Comma {
			return "", p.errf(tok, "expected ',' or ')' in type arguments, found %s %q", tok.Kind, tok.Text)
		}
	}
	return name + "(" + strings.Join(args, ",") + ")", nil
}

// parseColumnConstraints consumes inline constraint keywords up to the next
// clause separator. Inline PRIMARY KEY and NOT NULL normalize into the same
// representation as their table-level equivalents.
func (p *parser) parseColumnConstraints(table *schema.Table, col *schema.Column) error {
	for {
		tok := p.cur()
		if tok.Kind == lexer.Comma || tok.Kind == lexer.RParen || tok.Kind == lexer.EOF {
			return nil
		}
		if tok.Kind != lexer.Keyword {
			return p.errf(tok, "expected column constraint, found %s %q", tok.Kind, tok.Text)
		}
		p.pos++
		switch tok.Upper() {
		case "NOT":
			if err := p.expectKeyword("NULL"); err != nil {
				return err
			}
			col.Nullable = false
		case "NULL":
			col.Nullable = true
		case "PRIMARY":
			if err := p.expectKeyword("KEY"); err != nil {
				return err
			}
			if len(table.PrimaryKey) > 0 {
				return p.errf(tok, "table %q has more than one primary key", table.Name)
			}
			table.PrimaryKey = []string{col.Name}
		case "UNIQUE":
			col.Unique = true
		case "DEFAULT":
			def, err := p.parseDefaultLiteral()
			if err != nil {
				return err
			}
			col.Default = &def
		default:
			return p.errf(tok, "unexpected keyword %q in column definition", tok.Text)
		}
	}
}

// parseDefaultLiteral reads the literal after DEFAULT and returns its SQL
// spelling.
func (p *parser) parseDefaultLiteral() (string, error) {
	tok := p.advance()
	switch tok.Kind {
	case lexer.Number:
		return tok.Text, nil
	case lexer.String:
		return "'" + strings.ReplaceAll(tok.Text, "'", "''") + "'", nil
	case lexer.Keyword:
		switch tok.Upper() {
		case "NULL", "TRUE", "FALSE":
			return tok.Upper(), nil
		}
	}
	return "", p.errf(tok, "expected literal after DEFAULT, found %s %q", tok.Kind, tok.Text)
}
