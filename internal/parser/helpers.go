// File: parser/helpers.go — cursor primitives shared by every production.
package parser

import "github.com/largomst/plox/internal/token"

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// consume advances past the next token if it has the expected type,
// or panics with a parseError after reporting message at the current
// token — caught by declaration()'s recover to drive synchronize().
func (p *Parser) consume(typ token.Type, message string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// reportError reports a diagnostic without unwinding — used for the
// arg/param-count limit, which must not abort the parse.
func (p *Parser) reportError(tok token.Token, message string) {
	p.sink.ParseError(tok, message)
}

// errorAt reports a diagnostic and returns the panic payload for
// callers that need to unwind (consume, primary's fallthrough).
func (p *Parser) errorAt(tok token.Token, message string) parseError {
	p.sink.ParseError(tok, message)
	return parseError{}
}
