/*
Package interpreter walks the AST produced by the parser, evaluating
expressions and executing statements against a lexically scoped
environment chain.

Two kinds of signal need to unwind across arbitrarily many nested
statement executors: a runtime error, and a Return statement escaping
out of a function body. Rather than thread a sentinel result through
every statement executor, both are modeled as typed panics.
ExecuteFunctionBody recovers a Return as the call's result and hands
a runtime error back as an error value, which the call site panics
with again; Interpret is the final boundary that reports runtime
errors. This keeps the per-statement and per-expression code itself
in plain direct style.
*/
package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/largomst/plox/internal/ast"
	"github.com/largomst/plox/internal/callable"
	"github.com/largomst/plox/internal/diagnostics"
	"github.com/largomst/plox/internal/environment"
	"github.com/largomst/plox/internal/token"
)

// returnSignal is the panic payload used to unwind a Return statement
// out to the Call site that invoked the function. It is never visible
// to the diagnostics Sink.
type returnSignal struct {
	value any
}

// Interpreter executes a statement list against a persistent global
// environment. A single Interpreter is reused across REPL lines so
// that top-level declarations accumulate.
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	sink    *diagnostics.Sink
	stdout  io.Writer
}

// New creates an Interpreter writing print output to stdout and
// reporting runtime errors to sink. The global environment is seeded
// with the native clock function.
func New(stdout io.Writer, sink *diagnostics.Sink) *Interpreter {
	globals := environment.New(nil)
	globals.Define("clock", &callable.Native{
		Name:   "clock",
		ArityN: 0,
		Fn: func([]any) (any, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
	return &Interpreter{Globals: globals, env: globals, sink: sink, stdout: stdout}
}

// Interpret executes statements in order against the current
// environment. A runtime error unwinding out of any statement is
// reported to the Sink and stops the remaining statements from
// running; the interpreter's environment is left exactly as it was
// before the failing statement — no partial block state leaks out,
// because every block restores its previous environment on every exit
// path.
func (i *Interpreter) Interpret(statements []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if rtErr, ok := r.(*diagnostics.RuntimeError); ok {
				i.sink.RuntimeErrorReport(rtErr)
				return
			}
			panic(r)
		}
	}()
	for _, stmt := range statements {
		i.execute(stmt)
	}
}

// ExecuteFunctionBody runs a function's body against callFrame,
// implementing callable.Executor. A Return unwinding out of the body
// is caught here and becomes the call's result; falling off the end
// yields nil.
func (i *Interpreter) ExecuteFunctionBody(body []ast.Stmt, callFrame *environment.Environment) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				result = ret.value
				return
			}
			if rtErr, ok := r.(*diagnostics.RuntimeError); ok {
				err = rtErr
				return
			}
			panic(r)
		}
	}()
	i.executeBlock(body, callFrame)
	return nil, nil
}

func (i *Interpreter) execute(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		i.evaluate(s.Expression)
	case *ast.PrintStmt:
		value := i.evaluate(s.Expression)
		fmt.Fprintln(i.stdout, stringify(value))
	case *ast.VarStmt:
		var value any
		if s.Initializer != nil {
			value = i.evaluate(s.Initializer)
		}
		i.env.Define(s.Name.Lexeme, value)
	case *ast.BlockStmt:
		i.executeBlock(s.Statements, environment.New(i.env))
	case *ast.IfStmt:
		if isTruthy(i.evaluate(s.Condition)) {
			i.execute(s.Then)
		} else if s.Else != nil {
			i.execute(s.Else)
		}
	case *ast.WhileStmt:
		for isTruthy(i.evaluate(s.Condition)) {
			i.execute(s.Body)
		}
	case *ast.FunctionStmt:
		fn := callable.NewFunction(s, i.env)
		i.env.Define(s.Name.Lexeme, fn)
	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			value = i.evaluate(s.Value)
		}
		panic(returnSignal{value: value})
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
}

// executeBlock runs statements against env, always restoring the
// interpreter's previous environment afterward — including when a
// runtime error or Return unwinds through the block. The defer runs
// on every exit path because Go's panic/recover propagates through
// defers regardless of how the enclosing call is unwinding.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *environment.Environment) {
	previous := i.env
	defer func() { i.env = previous }()

	i.env = env
	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) evaluate(expr ast.Expr) any {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value
	case *ast.Grouping:
		return i.evaluate(e.Expression)
	case *ast.Variable:
		value, err := i.env.Get(e.Name)
		if err != nil {
			panic(err)
		}
		return value
	case *ast.Assign:
		value := i.evaluate(e.Value)
		if err := i.env.Assign(e.Name, value); err != nil {
			panic(err)
		}
		return value
	case *ast.Unary:
		return i.evaluateUnary(e)
	case *ast.Logical:
		return i.evaluateLogical(e)
	case *ast.Binary:
		return i.evaluateBinary(e)
	case *ast.Call:
		return i.evaluateCall(e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func (i *Interpreter) evaluateUnary(e *ast.Unary) any {
	right := i.evaluate(e.Right)
	switch e.Operator.Type {
	case token.Minus:
		n := checkNumberOperand(e.Operator, right)
		return -n
	case token.Bang:
		return !isTruthy(right)
	}
	panic(fmt.Sprintf("interpreter: unhandled unary operator %v", e.Operator.Type))
}

// evaluateLogical implements short-circuiting "and"/"or": the right
// operand is only evaluated when the left doesn't already determine
// the result, and the returned value is the operand itself, not a
// coerced boolean.
func (i *Interpreter) evaluateLogical(e *ast.Logical) any {
	left := i.evaluate(e.Left)
	if e.Operator.Type == token.Or {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evaluateBinary(e *ast.Binary) any {
	left := i.evaluate(e.Left)
	right := i.evaluate(e.Right)

	switch e.Operator.Type {
	case token.Minus:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l - r
	case token.Slash:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l / r
	case token.Star:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l * r
	case token.Plus:
		return evaluatePlus(e.Operator, left, right)
	case token.Greater:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l > r
	case token.GreaterEqual:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l >= r
	case token.Less:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l < r
	case token.LessEqual:
		l, r := checkNumberOperands(e.Operator, left, right)
		return l <= r
	case token.BangEqual:
		return !isEqual(left, right)
	case token.EqualEqual:
		return isEqual(left, right)
	}
	panic(fmt.Sprintf("interpreter: unhandled binary operator %v", e.Operator.Type))
}

// evaluatePlus handles "+"'s dual role: numeric add, string
// concatenation, or the two-numbers-or-strings error. Equality is
// handled separately by isEqual, which never requires same-kind
// operands — unlike "+" and the ordering comparisons, "==" and "!="
// are defined across any pair of values.
func evaluatePlus(operator token.Token, left, right any) any {
	if l, ok := left.(float64); ok {
		if r, ok := right.(float64); ok {
			return l + r
		}
	}
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return l + r
		}
	}
	panic(diagnostics.NewRuntimeError(operator, "Operands must be two numbers or strings."))
}

func (i *Interpreter) evaluateCall(e *ast.Call) any {
	callee := i.evaluate(e.Callee)

	args := make([]any, len(e.Args))
	for idx, arg := range e.Args {
		args[idx] = i.evaluate(arg)
	}

	fn, ok := callee.(callable.Callable)
	if !ok {
		panic(diagnostics.NewRuntimeError(e.Paren, "Can only call functions and classes."))
	}
	if len(args) != fn.Arity() {
		panic(diagnostics.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}

	result, err := fn.Call(i, args)
	if err != nil {
		panic(err)
	}
	return result
}

// checkNumberOperand requires operand to be a number, or panics with a
// runtime error naming operator's line.
func checkNumberOperand(operator token.Token, operand any) float64 {
	if n, ok := operand.(float64); ok {
		return n
	}
	panic(diagnostics.NewRuntimeError(operator, "Operand must be a number."))
}

func checkNumberOperands(operator token.Token, left, right any) (float64, float64) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if lok && rok {
		return l, r
	}
	panic(diagnostics.NewRuntimeError(operator, "Operands must be a number."))
}

// isTruthy: nil and false are falsy, everything else is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual is structural equality: nil equals only nil, and every
// other pair compares by the wrapped Go value — no number-operand
// check, so values of different kinds simply compare unequal instead
// of raising an error.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a runtime value for "print": nil -> "nil", numbers
// that are exact integers print without a trailing ".0", everything
// else uses its natural Go formatting.
func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
