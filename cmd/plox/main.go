/*
Command plox is the CLI entry point for the interpreter: file mode and
REPL mode, with a conventional Unix exit-code mapping.

Zero args starts the REPL, one arg runs a file, two or more prints
usage and exits 64. Exit codes: 0 success, 64 CLI usage, 65
static/parse error, 70 runtime error.
*/
package main

import (
	"fmt"
	"os"

	"github.com/largomst/plox/internal/diagnostics"
	"github.com/largomst/plox/internal/interpreter"
	"github.com/largomst/plox/internal/parser"
	"github.com/largomst/plox/internal/repl"
	"github.com/largomst/plox/internal/scanner"
)

// version is reported by the REPL's startup banner.
const version = "0.1.0"

func main() {
	switch len(os.Args) {
	case 1:
		r := repl.New(version)
		if err := r.Run(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(70)
		}
	case 2:
		os.Exit(runFile(os.Args[1]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: plox [script]")
		os.Exit(64)
	}
}

// runFile executes a single source file once and maps the diagnostics
// sink's flags to an exit code: 65 if any parse/static error was
// flagged, else 70 if a runtime error was flagged, else 0.
func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		// Not one of the four language-level exit codes above — the
		// script couldn't even be read. 66 follows the sysexits(3)
		// EX_NOINPUT convention for "cannot open input".
		fmt.Fprintln(os.Stderr, err)
		return 66
	}

	sink := diagnostics.NewSink(os.Stderr)
	tokens := scanner.New(string(source), sink).ScanTokens()
	statements := parser.New(tokens, sink).Parse()
	if sink.HadError {
		return 65
	}

	interp := interpreter.New(os.Stdout, sink)
	interp.Interpret(statements)
	if sink.HadRuntimeError {
		return 70
	}
	return 0
}
