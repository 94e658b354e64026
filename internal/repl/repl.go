/*
Package repl implements the interactive Read-Eval-Print Loop driver:
read a line, interpret it, print its output and any diagnostics,
repeat. It uses readline for line editing and history and fatih/color
for banner and error coloring, and keeps its surface deliberately
small — a prompt and an empty-line exit, plus a one-line startup
banner — rather than growing meta-commands.
*/
package repl

import (
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/largomst/plox/internal/diagnostics"
	"github.com/largomst/plox/internal/interpreter"
	"github.com/largomst/plox/internal/parser"
	"github.com/largomst/plox/internal/scanner"
)

// Prompt is the per-line prompt shown to the user.
const Prompt = "> "

// Repl reads lines from stdin, interprets each one, and prints
// results/errors until an empty line or EOF terminates the session.
type Repl struct {
	Version string

	banner *color.Color
}

// New creates a Repl that reports the given version string in its
// startup banner.
func New(version string) *Repl {
	banner := color.New(color.FgGreen)
	banner.EnableColor()
	return &Repl{Version: version, banner: banner}
}

// Run starts the interactive loop, reading from in and writing
// evaluation output and diagnostics to out. An empty line ends the
// session; both diagnostics flags reset at the start of every prompt
// so that one line's error doesn't bleed into the next.
func (r *Repl) Run(in io.ReadCloser, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      Prompt,
		Stdin:       in,
		Stdout:      out,
		HistoryFile: "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	r.banner.Fprintf(out, "plox %s — Ctrl-D or an empty line to exit\n", r.Version)

	sink := diagnostics.NewSink(out)
	interp := interpreter.New(out, sink)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt (Ctrl-C)
			return nil
		}
		if line == "" {
			return nil
		}

		sink.Reset()
		r.runLine(interp, sink, line)
	}
}

func (r *Repl) runLine(interp *interpreter.Interpreter, sink *diagnostics.Sink, line string) {
	tokens := scanner.New(line, sink).ScanTokens()
	statements := parser.New(tokens, sink).Parse()
	if sink.HadError {
		return
	}
	interp.Interpret(statements)
}
