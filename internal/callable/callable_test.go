package callable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/largomst/plox/internal/ast"
	"github.com/largomst/plox/internal/callable"
	"github.com/largomst/plox/internal/environment"
	"github.com/largomst/plox/internal/token"
)

// stubExecutor lets tests drive Function.Call without a real interpreter.
type stubExecutor struct {
	gotBody  []ast.Stmt
	gotFrame *environment.Environment
	result   any
	err      error
}

func (s *stubExecutor) ExecuteFunctionBody(body []ast.Stmt, callFrame *environment.Environment) (any, error) {
	s.gotBody = body
	s.gotFrame = callFrame
	return s.result, s.err
}

func TestFunction_Arity(t *testing.T) {
	decl := &ast.FunctionStmt{
		Name:   token.New(token.Identifier, "add", nil, 1),
		Params: []token.Token{{Type: token.Identifier, Lexeme: "a"}, {Type: token.Identifier, Lexeme: "b"}},
	}
	fn := callable.NewFunction(decl, environment.New(nil))
	assert.Equal(t, 2, fn.Arity())
}

func TestFunction_CallBindsParamsInFreshFrameChainedOffClosure(t *testing.T) {
	closure := environment.New(nil)
	decl := &ast.FunctionStmt{
		Name:   token.New(token.Identifier, "add", nil, 1),
		Params: []token.Token{{Type: token.Identifier, Lexeme: "a"}, {Type: token.Identifier, Lexeme: "b"}},
		Body:   []ast.Stmt{&ast.ReturnStmt{}},
	}
	fn := callable.NewFunction(decl, closure)
	exec := &stubExecutor{result: 42.0}

	result, err := fn.Call(exec, []any{1.0, 2.0})
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)

	require.NotNil(t, exec.gotFrame)
	assert.Equal(t, closure, exec.gotFrame.Parent, "call frame must chain off the closure")
	a, err := exec.gotFrame.Get(token.New(token.Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, a)
}

func TestFunction_String(t *testing.T) {
	decl := &ast.FunctionStmt{Name: token.New(token.Identifier, "greet", nil, 1)}
	fn := callable.NewFunction(decl, environment.New(nil))
	assert.Equal(t, "<fn greet>", fn.String())
}

func TestNative_CallDelegatesToFn(t *testing.T) {
	native := &callable.Native{
		Name:   "clock",
		ArityN: 0,
		Fn:     func(args []any) (any, error) { return 1.0, nil },
	}
	result, err := native.Call(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result)
	assert.Equal(t, 0, native.Arity())
}
