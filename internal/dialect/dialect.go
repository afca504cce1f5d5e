// Package dialect defines the closed set of supported SQL dialects. Each
// dialect is a capability table (identifier quoting, reserved words, and a
// raw-type mapping) passed into otherwise dialect-agnostic lexing and
// parsing logic.
package dialect

import (
	"fmt"
	"strings"

	"github.com/nordql/ddlq/schema"
)

// Rules holds the per-dialect capabilities consumed by the lexer, the
// parser, and the SQL renderer.
type Rules struct {
	Name  string
	Quote rune // identifier quote character

	types    map[string]schema.Type
	keywords map[string]struct{}
}

// UnknownTypeError reports a raw column type with no mapping in the active
// dialect. Unmapped types stop processing; they are never silently mapped
// to a catch-all type.
type UnknownTypeError struct {
	Dialect string
	RawType string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Dialect, e.RawType)
}

// Resolve maps a raw type token to its semantic type. Lookup is by the
// normalized base name: type arguments such as VARCHAR(10) are stripped and
// inner whitespace is collapsed, so "character   varying (20)" resolves the
// same as "CHARACTER VARYING".
func (r *Rules) Resolve(rawType string) (schema.Type, error) {
	t, ok := r.types[NormalizeType(rawType)]
	if !ok {
		return schema.Type{}, &UnknownTypeError{Dialect: r.Name, RawType: rawType}
	}
	return t, nil
}

// HasType reports whether the normalized name maps to a semantic type.
// The parser uses it to decide whether a trailing word extends a multi-word
// type name such as DOUBLE PRECISION.
func (r *Rules) HasType(name string) bool {
	_, ok := r.types[NormalizeType(name)]
	return ok
}

// IsKeyword reports whether s is a reserved word, case-insensitively.
func (r *Rules) IsKeyword(s string) bool {
	_, ok := r.keywords[strings.ToUpper(s)]
	return ok
}

// QuoteIdent renders an identifier with the dialect's quote character,
// doubling any embedded quote so the output stays syntactically valid.
func (r *Rules) QuoteIdent(name string) string {
	q := string(r.Quote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// NormalizeType reduces a raw type token to its lookup key: arguments
// stripped, whitespace collapsed, upper-cased.
func NormalizeType(rawType string) string {
	base := rawType
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	return strings.ToUpper(strings.Join(strings.Fields(base), " "))
}

// Lookup returns the dialect registered under the given name.
func Lookup(name string) (*Rules, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q (must be postgres, mysql, or sqlite)", name)
	}
}

// The DDL keyword subset recognized by the parser. Shared across dialects;
// dialect-specific vocabulary lives in the type maps.
var ddlKeywords = keywordSet(
	"CREATE", "TABLE", "PRIMARY", "KEY", "FOREIGN", "REFERENCES",
	"CONSTRAINT", "NOT", "NULL", "DEFAULT", "UNIQUE",
	"ON", "DELETE", "CASCADE", "SET", "RESTRICT", "NO", "ACTION",
	"TRUE", "FALSE",
)

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
