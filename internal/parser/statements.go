package parser

import (
	"strings"

	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/internal/lexer"
)

// Statements splits a DDL batch into individual statement texts on
// top-level semicolons, using the lexer so literals and comments containing
// semicolons do not confuse the split. Statement texts are trimmed and
// exclude the terminating semicolon.
func Statements(ddl string, rules *dialect.Rules) ([]string, error) {
	tokens, err := lexer.Tokenize(ddl, rules)
	if err != nil {
		return nil, err
	}

	var stmts []string
	start := -1
	depth := 0
	flush := func(end int) {
		if start < 0 {
			return
		}
		if text := strings.TrimSpace(ddl[start:end]); text != "" {
			stmts = append(stmts, text)
		}
		start = -1
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
		case lexer.Semicolon:
			if depth == 0 {
				flush(tok.Offset)
				continue
			}
		case lexer.EOF:
			flush(tok.Offset)
			return stmts, nil
		}
		if start < 0 {
			start = tok.Offset
		}
	}
	flush(len(ddl))
	return stmts, nil
}
