package ddlq

import (
	"github.com/nordql/ddlq/internal/dialect"
	"github.com/nordql/ddlq/internal/lexer"
	"github.com/nordql/ddlq/internal/parser"
	"github.com/nordql/ddlq/schema"
)

// Error types raised while parsing a DDL batch, re-exported so callers can
// match them with errors.As without importing internal packages.
//
// All of them are terminal for the operation that raised them: parsing is
// all-or-nothing and no partial schema is ever returned.
type (
	// LexError reports a malformed token with its byte offset.
	LexError = lexer.LexError
	// ParseError reports a structural DDL violation with the offending
	// statement index.
	ParseError = parser.ParseError
	// SchemaError reports a post-parse validation failure, such as an
	// unresolved foreign key or a duplicate table name.
	SchemaError = schema.SchemaError
	// UnknownTypeError reports a column type with no mapping in the
	// active dialect.
	UnknownTypeError = dialect.UnknownTypeError
)
