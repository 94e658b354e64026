// Package diagnostics implements the error sink shared by the scanner,
// parser, and interpreter.
//
// Sink threads the "did anything go wrong" state explicitly through
// the pipeline rather than relying on package-level mutable globals. A
// single Sink is created once per run (file mode) or once per REPL
// session and reset between prompts.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/largomst/plox/internal/token"
)

// RuntimeError is the error type the interpreter unwinds with. It
// always carries the token whose line should be reported, including
// for arity-mismatch and other call-site diagnostics.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// NewRuntimeError builds a RuntimeError, formatting Message with fmt.Sprintf.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Sink accumulates diagnostics for a single run and tracks whether a
// static (lexical/parse) or runtime error occurred. Both flags only
// transition false→true within a run; Reset is what clears them back.
type Sink struct {
	Stderr          io.Writer
	HadError        bool
	HadRuntimeError bool
	errColor        *color.Color
}

// NewSink creates a Sink that writes colored diagnostics to w.
func NewSink(w io.Writer) *Sink {
	c := color.New(color.FgRed)
	c.EnableColor()
	return &Sink{Stderr: w, errColor: c}
}

// Reset clears both error flags. The REPL driver calls this between
// prompts, so one bad line doesn't leave the next one marked as
// failed too.
func (s *Sink) Reset() {
	s.HadError = false
	s.HadRuntimeError = false
}

// ScanError reports a lexical error at the given line: "[line N] Error: <msg>".
func (s *Sink) ScanError(line int, message string) {
	s.report(line, "", message)
}

// ParseError reports a parse error at tok, using one of two message
// shapes: "Error at end: …" for EOF, otherwise "Error at <lexeme>: …".
func (s *Sink) ParseError(tok token.Token, message string) {
	if tok.Type == token.EOF {
		s.report(tok.Line, " at end", message)
	} else {
		s.report(tok.Line, " at "+tok.Lexeme, message)
	}
}

func (s *Sink) report(line int, where, message string) {
	s.errColor.Fprintf(s.Stderr, "[line %d] Error%s: %s\n", line, where, message)
	s.HadError = true
}

// RuntimeErrorReport reports a runtime error as "<msg>\n[line N]" and
// sets HadRuntimeError.
func (s *Sink) RuntimeErrorReport(err *RuntimeError) {
	s.errColor.Fprintf(s.Stderr, "%s\n[line %d]\n", err.Message, err.Token.Line)
	s.HadRuntimeError = true
}
