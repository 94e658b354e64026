package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/largomst/plox/internal/diagnostics"
	"github.com/largomst/plox/internal/interpreter"
	"github.com/largomst/plox/internal/parser"
	"github.com/largomst/plox/internal/scanner"
)

// run scans, parses, and interprets src, returning stdout, stderr and
// the diagnostics sink so tests can assert on all three.
func run(t *testing.T, src string) (stdout, stderr string, sink *diagnostics.Sink) {
	t.Helper()
	var out, errBuf bytes.Buffer
	sink = diagnostics.NewSink(&errBuf)

	tokens := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	require.False(t, sink.HadError, "unexpected parse error: %s", errBuf.String())

	interp := interpreter.New(&out, sink)
	interp.Interpret(stmts)
	return out.String(), errBuf.String(), sink
}

func TestInterpret_ArithmeticPrecedence(t *testing.T) {
	stdout, _, sink := run(t, "print 1 + 2 * 3;")
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "7\n", stdout)
}

func TestInterpret_Closures(t *testing.T) {
	src := `
fun makeCounter() {
  var i = 0;
  fun c() { i = i + 1; return i; }
  return c;
}
var c = makeCounter();
print c();
print c();
`
	stdout, _, sink := run(t, src)
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "1\n2\n", stdout)
}

func TestInterpret_BlockScoping(t *testing.T) {
	src := `var a = "outer"; { var a = "inner"; print a; } print a;`
	stdout, _, sink := run(t, src)
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "inner\nouter\n", stdout)
}

func TestInterpret_ForLoop(t *testing.T) {
	stdout, _, sink := run(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "0\n1\n2\n", stdout)
}

func TestInterpret_RuntimeTypeError(t *testing.T) {
	_, stderr, sink := run(t, `print "a" + 1;`)
	assert.True(t, sink.HadRuntimeError)
	assert.Contains(t, stderr, "Operands must be two numbers or strings.")
	assert.Contains(t, stderr, "[line 1]")
}

func TestInterpret_PrintFormatsWholeNumbersWithoutDecimal(t *testing.T) {
	stdout, _, _ := run(t, "print 4.0; print 4.5; print -0.0;")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "4", lines[0])
	assert.Equal(t, "4.5", lines[1])
}

func TestInterpret_NilAndBooleanStringify(t *testing.T) {
	stdout, _, _ := run(t, "print nil; print true; print false;")
	assert.Equal(t, "nil\ntrue\nfalse\n", stdout)
}

func TestInterpret_TruthinessOfNilAndFalse(t *testing.T) {
	stdout, _, _ := run(t, `if (nil) print "no"; else print "yes"; if (!false) print "yes2";`)
	assert.Equal(t, "yes\nyes2\n", stdout)
}

func TestInterpret_LogicalShortCircuitReturnsOperandValue(t *testing.T) {
	stdout, _, _ := run(t, `print "left" or "right"; print nil and "never";`)
	assert.Equal(t, "left\nnil\n", stdout)
}

func TestInterpret_EqualityAcrossKindsNeverErrors(t *testing.T) {
	stdout, _, sink := run(t, `print "a" == "a"; print 1 == "1"; print nil == false;`)
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "true\nfalse\nfalse\n", stdout)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, stderr, sink := run(t, "print nope;")
	assert.True(t, sink.HadRuntimeError)
	assert.Contains(t, stderr, `Undefined variable "nope".`)
}

func TestInterpret_WrongArityIsRuntimeError(t *testing.T) {
	_, stderr, sink := run(t, "fun f(a) { return a; } f(1, 2);")
	assert.True(t, sink.HadRuntimeError)
	assert.Contains(t, stderr, "Expected 1 arguments but got 2.")
}

func TestInterpret_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, stderr, sink := run(t, "var x = 1; x();")
	assert.True(t, sink.HadRuntimeError)
	assert.Contains(t, stderr, "Can only call functions and classes.")
}

func TestInterpret_ReturnFallsThroughAsNil(t *testing.T) {
	stdout, _, sink := run(t, "fun f() {} print f();")
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "nil\n", stdout)
}

func TestInterpret_RuntimeErrorStopsRemainingStatements(t *testing.T) {
	stdout, _, sink := run(t, `print "before"; print 1 + "x"; print "after";`)
	assert.True(t, sink.HadRuntimeError)
	assert.Equal(t, "before\n", stdout, "statements after the failing one must not run")
}

func TestInterpret_NativeClockIsMonotonicish(t *testing.T) {
	stdout, _, sink := run(t, `
fun le(a, b) { if (a <= b) return true; return false; }
var first = clock();
var second = clock();
print le(first, second);
`)
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "true\n", stdout)
}

func TestInterpret_BlockRestoresEnvironmentOnRuntimeError(t *testing.T) {
	// Simulates two REPL lines sharing one Interpreter: the first line's
	// block errors mid-way, the second line must still see the
	// top-level environment exactly as it was before the block ran.
	var out, errBuf bytes.Buffer
	sink := diagnostics.NewSink(&errBuf)
	interp := interpreter.New(&out, sink)

	firstLine := `var a = "outer"; { var a = "inner"; print 1 + "x"; }`
	tokens := scanner.New(firstLine, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	interp.Interpret(stmts)
	require.True(t, sink.HadRuntimeError)
	sink.Reset()

	secondLine := `print a;`
	tokens = scanner.New(secondLine, sink).ScanTokens()
	stmts = parser.New(tokens, sink).Parse()
	interp.Interpret(stmts)

	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "outer\n", out.String())
}
