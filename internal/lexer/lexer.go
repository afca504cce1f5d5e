// Package lexer splits raw DDL text into tokens. Quoting and reserved-word
// recognition are dialect-parameterized; whitespace and comments are
// skipped, not emitted.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nordql/ddlq/internal/dialect"
)

// Kind identifies the type of a token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	Number
	String
	LParen
	RParen
	Comma
	Semicolon
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	case Number:
		return "number"
	case String:
		return "string literal"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	case Semicolon:
		return "';'"
	default:
		return "unknown token"
	}
}

// Token is a single lexical unit. For quoted identifiers and string
// literals, Text holds the decoded content without the surrounding quotes.
type Token struct {
	Kind   Kind
	Text   string
	Offset int // byte offset of the token start
}

// Upper returns the token text upper-cased, for case-insensitive keyword
// comparison.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}

// LexError reports a malformed token and where it starts.
type LexError struct {
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at byte %d: %s", e.Offset, e.Reason)
}

// Lexer produces a lazy token stream over a DDL input.
type Lexer struct {
	input string
	pos   int
	rules *dialect.Rules
}

// New creates a lexer for the given input and dialect.
func New(input string, rules *dialect.Rules) *Lexer {
	return &Lexer{input: input, rules: rules}
}

// Tokenize collects the full token stream, including the trailing EOF
// token, or fails with a LexError.
func Tokenize(input string, rules *dialect.Rules) ([]Token, error) {
	l := New(input, rules)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. After returning EOF it keeps returning EOF.
// Malformed input yields a LexError, never a panic.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}
	start := l.pos
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Offset: start}, nil
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	switch {
	case r == '(':
		l.pos += size
		return Token{Kind: LParen, Text: "(", Offset: start}, nil
	case r == ')':
		l.pos += size
		return Token{Kind: RParen, Text: ")", Offset: start}, nil
	case r == ',':
		l.pos += size
		return Token{Kind: Comma, Text: ",", Offset: start}, nil
	case r == ';':
		l.pos += size
		return Token{Kind: Semicolon, Text: ";", Offset: start}, nil
	case r == '\'':
		return l.lexString(start)
	case r == l.rules.Quote:
		return l.lexQuotedIdent(start)
	case unicode.IsDigit(r):
		return l.lexNumber(start)
	case r == '_' || unicode.IsLetter(r):
		return l.lexWord(start)
	default:
		return Token{}, &LexError{Offset: start, Reason: fmt.Sprintf("unexpected character %q", r)}
	}
}

func (l *Lexer) skipSpaceAndComments() error {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += size
		case strings.HasPrefix(l.input[l.pos:], "--"):
			if i := strings.IndexByte(l.input[l.pos:], '\n'); i >= 0 {
				l.pos += i + 1
			} else {
				l.pos = len(l.input)
			}
		case strings.HasPrefix(l.input[l.pos:], "/*"):
			end := strings.Index(l.input[l.pos+2:], "*/")
			if end < 0 {
				return &LexError{Offset: l.pos, Reason: "unterminated block comment"}
			}
			l.pos += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

// lexString scans a single-quoted literal. A doubled quote is an escaped
// quote, not a terminator.
func (l *Lexer) lexString(start int) (Token, error) {
	var b strings.Builder
	i := l.pos + 1 // skip opening quote
	for i < len(l.input) {
		if l.input[i] == '\'' {
			if i+1 < len(l.input) && l.input[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			l.pos = i + 1
			return Token{Kind: String, Text: b.String(), Offset: start}, nil
		}
		b.WriteByte(l.input[i])
		i++
	}
	return Token{}, &LexError{Offset: start, Reason: "unterminated string literal"}
}

// lexQuotedIdent scans an identifier quoted with the dialect's quote
// character, honoring doubled-quote escapes.
func (l *Lexer) lexQuotedIdent(start int) (Token, error) {
	q := byte(l.rules.Quote)
	var b strings.Builder
	i := l.pos + 1
	for i < len(l.input) {
		if l.input[i] == q {
			if i+1 < len(l.input) && l.input[i+1] == q {
				b.WriteByte(q)
				i += 2
				continue
			}
			l.pos = i + 1
			return Token{Kind: Ident, Text: b.String(), Offset: start}, nil
		}
		b.WriteByte(l.input[i])
		i++
	}
	return Token{}, &LexError{Offset: start, Reason: "unterminated quoted identifier"}
}

func (l *Lexer) lexNumber(start int) (Token, error) {
	i := l.pos
	seenDot := false
	for i < len(l.input) {
		c := l.input[i]
		if c == '.' {
			if seenDot {
				return Token{}, &LexError{Offset: i, Reason: "malformed number"}
			}
			seenDot = true
			i++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		i++
	}
	text := l.input[l.pos:i]
	l.pos = i
	return Token{Kind: Number, Text: text, Offset: start}, nil
}

func (l *Lexer) lexWord(start int) (Token, error) {
	i := l.pos
	for i < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[i:])
		if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	text := l.input[l.pos:i]
	l.pos = i
	kind := Ident
	if l.rules.IsKeyword(text) {
		kind = Keyword
	}
	return Token{Kind: kind, Text: text, Offset: start}, nil
}
