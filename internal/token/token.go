// Package token defines the lexical atoms produced by the scanner and
// consumed by the parser and interpreter.
package token

import "fmt"

// Type identifies the syntactic category of a Token. It is defined as
// a distinct integer type rather than a string so that comparisons
// and switch statements compile to simple integer operations.
type Type int

// Token kinds, grouped by category.
const (
	// Single-character tokens.
	LeftParen Type = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var names = map[Type]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE",
	Fun: "FUN", For: "FOR", If: "IF", Nil: "NIL", Or: "OR",
	Print: "PRINT", Return: "RETURN", Super: "SUPER", This: "THIS",
	True: "TRUE", Var: "VAR", While: "WHILE", EOF: "EOF",
}

// String renders the token type's name, e.g. "LEFT_PAREN".
func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Keywords maps reserved words to their token type. The scanner
// consults this table once it has scanned a full identifier lexeme.
var Keywords = map[string]Type{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is an immutable lexical atom: a type, the source lexeme it was
// scanned from, an optional decoded literal value, and the 1-based
// source line the scanner was on when the token was completed (for a
// string literal spanning several lines, its last line).
//
// Literal is nil for every token kind except NUMBER (float64) and
// STRING (string) — this distinguishes "no literal" from a zero
// literal value.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
}

// New constructs a Token. Use it from the scanner only; tokens are
// otherwise immutable values passed by copy.
func New(typ Type, lexeme string, literal any, line int) Token {
	return Token{Type: typ, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders the token for debugging, e.g. "NUMBER 3.14 3.14".
func (t Token) String() string {
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}
