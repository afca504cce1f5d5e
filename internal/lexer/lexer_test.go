package lexer

import (
	"errors"
	"testing"

	"github.com/nordql/ddlq/internal/dialect"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules *dialect.Rules
		want  []Token
	}{
		{
			name:  "keywords idents and punctuation",
			input: "CREATE TABLE t (id INT);",
			rules: dialect.Postgres,
			want: []Token{
				{Kind: Keyword, Text: "CREATE", Offset: 0},
				{Kind: Keyword, Text: "TABLE", Offset: 7},
				{Kind: Ident, Text: "t", Offset: 13},
				{Kind: LParen, Text: "(", Offset: 15},
				{Kind: Ident, Text: "id", Offset: 16},
				{Kind: Ident, Text: "INT", Offset: 19},
				{Kind: RParen, Text: ")", Offset: 22},
				{Kind: Semicolon, Text: ";", Offset: 23},
				{Kind: EOF, Offset: 24},
			},
		},
		{
			name:  "keywords are case-insensitive",
			input: "create Table",
			rules: dialect.Postgres,
			want: []Token{
				{Kind: Keyword, Text: "create", Offset: 0},
				{Kind: Keyword, Text: "Table", Offset: 7},
				{Kind: EOF, Offset: 12},
			},
		},
		{
			name:  "quoted identifier",
			input: `"order detail"`,
			rules: dialect.Postgres,
			want: []Token{
				{Kind: Ident, Text: "order detail", Offset: 0},
				{Kind: EOF, Offset: 14},
			},
		},
		{
			name:  "quoted identifier with escaped quote",
			input: `"a""b"`,
			rules: dialect.Postgres,
			want: []Token{
				{Kind: Ident, Text: `a"b`, Offset: 0},
				{Kind: EOF, Offset: 6},
			},
		},
		{
			name:  "mysql backtick identifier",
			input: "`order`",
			rules: dialect.MySQL,
			want: []Token{
				{Kind: Ident, Text: "order", Offset: 0},
				{Kind: EOF, Offset: 7},
			},
		},
		{
			name:  "string literal with escaped quote",
			input: "'O''Brien'",
			rules: dialect.Postgres,
			want: []Token{
				{Kind: String, Text: "O'Brien", Offset: 0},
				{Kind: EOF, Offset: 10},
			},
		},
		{
			name:  "numbers",
			input: "10 10.5",
			rules: dialect.Postgres,
			want: []Token{
				{Kind: Number, Text: "10", Offset: 0},
				{Kind: Number, Text: "10.5", Offset: 3},
				{Kind: EOF, Offset: 7},
			},
		},
		{
			name:  "comments are skipped",
			input: "id -- trailing comment\n/* block\ncomment */ INT",
			rules: dialect.Postgres,
			want: []Token{
				{Kind: Ident, Text: "id", Offset: 0},
				{Kind: Ident, Text: "INT", Offset: 43},
				{Kind: EOF, Offset: 46},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input, tt.rules)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.want), got)
			}
			for i, tok := range got {
				if tok != tt.want[i] {
					t.Errorf("token %d: got %+v, want %+v", i, tok, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOffset int
	}{
		{name: "unexpected character", input: "id %", wantOffset: 3},
		{name: "unterminated string", input: "WHERE 'abc", wantOffset: 6},
		{name: "unterminated quoted identifier", input: `"abc`, wantOffset: 0},
		{name: "unterminated block comment", input: "id /* nope", wantOffset: 3},
		{name: "malformed number", input: "1.2.3", wantOffset: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, dialect.Postgres)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected LexError, got %T: %v", err, err)
			}
			if lexErr.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", lexErr.Offset, tt.wantOffset)
			}
		})
	}
}

func TestNextAfterEOF(t *testing.T) {
	l := New("id", dialect.Postgres)
	for i := 0; i < 2; i++ {
		if _, err := l.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next after EOF failed: %v", err)
		}
		if tok.Kind != EOF {
			t.Errorf("expected EOF, got %v", tok.Kind)
		}
	}
}
