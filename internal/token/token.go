package token

import (
	"unicode"
	"unicode/utf8"
)

type TokenType string

// Token is a single lexeme with its source position. Literal carries the
// decoded value for INT, STRING and BOOL tokens.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers and literals
	IDENT_LOWER = "IDENT_LOWER" // variables, function names
	IDENT_UPPER = "IDENT_UPPER" // type and constructor names
	INT         = "INT"
	STRING      = "STRING"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	LT       = "<"
	GT       = ">"
	LT_EQ    = "<="
	GT_EQ    = ">="
	EQ       = "=="
	NOT_EQ   = "!="
	AND      = "&&"
	OR       = "||"
	ARROW    = "->"
	PIPE     = "|"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	FUN      = "FUN"
	LET      = "LET"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	IF       = "IF"
	ELSE     = "ELSE"
	RETURN   = "RETURN"
	DATA     = "DATA"
	MATCH    = "MATCH"
	FOR      = "FOR"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	WILDCARD = "WILDCARD" // the bare '_' pattern
)

var keywords = map[string]TokenType{
	"fun":      FUN,
	"let":      LET,
	"true":     TRUE,
	"false":    FALSE,
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"data":     DATA,
	"match":    MATCH,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"_":        WILDCARD,
}

// LookupIdent distinguishes keywords from identifiers and classifies
// identifiers by the case of their first rune: lowercase names are
// variables/functions, uppercase names are types/constructors. The lexer
// admits any letter start, so the case test must be rune-based.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	r, _ := utf8.DecodeRuneInString(ident)
	if unicode.IsUpper(r) {
		return IDENT_UPPER
	}
	return IDENT_LOWER
}
