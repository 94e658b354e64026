package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/largomst/plox/internal/environment"
	"github.com/largomst/plox/internal/token"
)

func ident(name string) token.Token {
	return token.New(token.Identifier, name, nil, 1)
}

func TestEnvironment_DefineThenGet(t *testing.T) {
	env := environment.New(nil)
	env.Define("x", 10.0)
	value, err := env.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, value)
}

func TestEnvironment_GetUndefinedFails(t *testing.T) {
	env := environment.New(nil)
	_, err := env.Get(ident("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Undefined variable "missing".`)
}

func TestEnvironment_GetFallsThroughToParent(t *testing.T) {
	outer := environment.New(nil)
	outer.Define("a", "outer-value")
	inner := environment.New(outer)

	value, err := inner.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer-value", value)
}

func TestEnvironment_ShadowingDoesNotMutateParent(t *testing.T) {
	outer := environment.New(nil)
	outer.Define("a", "outer")
	inner := environment.New(outer)
	inner.Define("a", "inner")

	innerValue, _ := inner.Get(ident("a"))
	outerValue, _ := outer.Get(ident("a"))
	assert.Equal(t, "inner", innerValue)
	assert.Equal(t, "outer", outerValue)
}

func TestEnvironment_AssignUpdatesOwningFrame(t *testing.T) {
	outer := environment.New(nil)
	outer.Define("count", 0.0)
	inner := environment.New(outer)

	err := inner.Assign(ident("count"), 1.0)
	require.NoError(t, err)

	value, _ := outer.Get(ident("count"))
	assert.Equal(t, 1.0, value, "assign should update the frame that owns the binding")
}

func TestEnvironment_AssignUndefinedFails(t *testing.T) {
	env := environment.New(nil)
	err := env.Assign(ident("nope"), 1.0)
	require.Error(t, err)
}

func TestEnvironment_RedefinitionAllowed(t *testing.T) {
	env := environment.New(nil)
	env.Define("x", 1.0)
	env.Define("x", 2.0)
	value, _ := env.Get(ident("x"))
	assert.Equal(t, 2.0, value)
}

func TestEnvironment_SharedFrameVisibleToMultipleHolders(t *testing.T) {
	// Simulates two closures capturing the same defining frame: both
	// "holders" (here, just two references to the same *Environment)
	// must observe the same mutation.
	shared := environment.New(nil)
	shared.Define("i", 0.0)

	holderA := shared
	holderB := shared

	require.NoError(t, holderA.Assign(ident("i"), 1.0))
	value, _ := holderB.Get(ident("i"))
	assert.Equal(t, 1.0, value)
}
