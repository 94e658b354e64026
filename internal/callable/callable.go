/*
Package callable defines the runtime value kinds that can be
invoked — user-defined functions with closures, and native functions
such as clock.

Executor is the seam that lets this package call back into the
interpreter to run a function body without an import cycle between
callable and interpreter.
*/
package callable

import (
	"fmt"

	"github.com/largomst/plox/internal/ast"
	"github.com/largomst/plox/internal/environment"
)

// Executor is the subset of interpreter behavior a callable needs: the
// ability to run a function body against a fresh call-frame
// environment and get back either its return value or a propagated
// error.
type Executor interface {
	ExecuteFunctionBody(body []ast.Stmt, callFrame *environment.Environment) (any, error)
}

// Callable is the common interface for anything invocable: a
// user-defined function or a native (built-in) one.
type Callable interface {
	Arity() int
	Call(exec Executor, args []any) (any, error)
	String() string
}

// Function is a user-defined function value. Closure is the live
// environment active when the function was declared; sharing that
// pointer (rather than copying it) is what gives plox proper closure
// semantics — see internal/environment's doc comment.
type Function struct {
	Declaration *ast.FunctionStmt
	Closure     *environment.Environment
}

// NewFunction builds a Function capturing closure as its defining scope.
func NewFunction(declaration *ast.FunctionStmt, closure *environment.Environment) *Function {
	return &Function{Declaration: declaration, Closure: closure}
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Call binds args to the function's parameters in a fresh environment
// chained off its closure, then executes its body. A Return unwinding
// out of the body supplies the result; falling off the end yields nil.
func (f *Function) Call(exec Executor, args []any) (any, error) {
	callFrame := environment.New(f.Closure)
	for i, param := range f.Declaration.Params {
		callFrame.Define(param.Lexeme, args[i])
	}
	return exec.ExecuteFunctionBody(f.Declaration.Body, callFrame)
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// Native wraps a Go function as a plox callable, used for builtins
// like clock.
type Native struct {
	Name   string
	ArityN int
	Fn     func(args []any) (any, error)
}

func (n *Native) Arity() int { return n.ArityN }

func (n *Native) Call(_ Executor, args []any) (any, error) {
	return n.Fn(args)
}

func (n *Native) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}
