/*
Command astprint is a standalone AST pretty-printer, separate from the
interpreter core. It parses its argument (or stdin) as a program and
prints a fully parenthesized rendering of each expression statement,
e.g. "1 + 2 * 3;" becomes "(+ 1 (* 2 3))" — useful for eyeballing how
the parser grouped an expression without running it. Each statement
needs its terminating ';'; a parse error exits with status 65.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/largomst/plox/internal/ast"
	"github.com/largomst/plox/internal/diagnostics"
	"github.com/largomst/plox/internal/parser"
	"github.com/largomst/plox/internal/scanner"
)

func main() {
	var source string
	if len(os.Args) > 1 {
		source = os.Args[1]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		source = string(data)
	}

	sink := diagnostics.NewSink(os.Stderr)
	tokens := scanner.New(source, sink).ScanTokens()
	statements := parser.New(tokens, sink).Parse()
	if sink.HadError {
		os.Exit(65)
	}

	for _, stmt := range statements {
		if exprStmt, ok := stmt.(*ast.ExpressionStmt); ok {
			fmt.Println(print(exprStmt.Expression))
			continue
		}
		fmt.Printf("<%T statement not an expression — nothing to print>\n", stmt)
	}
}

// print renders expr as a fully parenthesized prefix expression.
func print(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprint(e.Value)
	case *ast.Grouping:
		return parenthesize("group", e.Expression)
	case *ast.Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *ast.Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *ast.Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *ast.Variable:
		return e.Name.Lexeme
	case *ast.Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *ast.Call:
		return parenthesize("call "+print(e.Callee), e.Args...)
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}

func parenthesize(name string, exprs ...ast.Expr) string {
	out := "(" + name
	for _, expr := range exprs {
		out += " " + print(expr)
	}
	return out + ")"
}
