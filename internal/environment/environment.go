/*
Package environment implements the lexically nested name→value
binding chain that backs variable scoping: a map of bindings plus a
parent pointer, with Get/Assign walking outward through the chain
until the global frame.

Environment deliberately does not copy its bindings when a closure
captures one — a function's closure field holds the live *Environment
pointer, so every holder of a shared frame (the active call stack and
any number of closures created within it) observes the same
mutations. Without that sharing, two closures built over the same
enclosing scope would stop seeing each other's assignments the moment
either one ran, which breaks the usual closure idiom of a counter
function mutating a variable captured from its maker.
*/
package environment

import (
	"github.com/largomst/plox/internal/diagnostics"
	"github.com/largomst/plox/internal/token"
)

// Environment is one scope frame: an unordered name→value mapping
// plus an optional parent. A nil Parent marks the global scope; the
// chain from any frame up to the global one is always acyclic.
type Environment struct {
	values map[string]any
	Parent *Environment
}

// New creates a frame whose enclosing scope is parent (nil for the
// global environment).
func New(parent *Environment) *Environment {
	return &Environment{values: make(map[string]any), Parent: parent}
}

// Define binds name to value in this frame unconditionally, even if
// name is already bound here. Redefinition is allowed at any scope,
// including the global one.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get looks up name in this frame, then recursively in Parent. It
// fails with a RuntimeError carrying tok (for line reporting) if the
// name is bound nowhere in the chain.
func (e *Environment) Get(tok token.Token) (any, error) {
	if value, ok := e.values[tok.Lexeme]; ok {
		return value, nil
	}
	if e.Parent != nil {
		return e.Parent.Get(tok)
	}
	return nil, diagnostics.NewRuntimeError(tok, "Undefined variable %q.", tok.Lexeme)
}

// Assign updates an existing binding in the frame that owns it,
// searching outward through Parent. It never creates a new global
// binding on a miss — that's Define's job.
func (e *Environment) Assign(tok token.Token, value any) error {
	if _, ok := e.values[tok.Lexeme]; ok {
		e.values[tok.Lexeme] = value
		return nil
	}
	if e.Parent != nil {
		return e.Parent.Assign(tok, value)
	}
	return diagnostics.NewRuntimeError(tok, "Undefined variable %q.", tok.Lexeme)
}
