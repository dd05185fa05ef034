package lisp

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	env := NewEnv(nil)
	assert.Equal(t, 0, env.Len())
	assert.Nil(t, env.Parent)
	env.Put("a", Number(1))
	_, err := env.Get("b")
	assert.ErrorIs(t, err, ErrUndefinedSymbol)
	v, err := env.Get("a")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(1)))
	env.Put("a", Number(2))
	v, err = env.Get("a")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(2)))
	assert.Equal(t, 1, env.Len())
}

func TestChild(t *testing.T) {
	root := NewEnv(nil)
	root.Put("a", Number(1))
	root.Put("b", Number(2))
	env := NewEnv(root)
	assert.Same(t, root.Runtime, env.Runtime)
	assert.Equal(t, 0, env.Len())
	env.Put("b", Number(3))

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(1)))
	v, err = env.Get("b")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(3)))

	// the parent binding is shadowed, not overwritten
	v, err = root.Get("b")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(2)))
	assert.Equal(t, 2, root.Len())
	assert.Equal(t, 1, env.Len())
}

func TestUndefinedSymbol(t *testing.T) {
	env := NewEnv(NewEnv(nil))
	_, err := env.Get("missing")
	require.Error(t, err)
	assert.Equal(t, ErrnoUndefinedSymbol, GetErrno(err))
	assert.EqualError(t, err, "undefined-symbol: missing")
}

func TestInitializeUserEnv(t *testing.T) {
	env := NewEnv(nil)
	err := InitializeUserEnv(env, WithMaximumStackHeight(5))
	require.NoError(t, err)
	assert.Equal(t, len(langBuiltins)+len(langSpecialOps), env.Len())
	assert.Equal(t, 5, env.Runtime.Stack.MaxHeight)
	for _, name := range []string{"+", "list", "first", "rest"} {
		v, err := env.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, LFun, v.Type, name)
		assert.False(t, v.IsSpecialOp(), name)
	}
	for _, name := range []string{"def", "if", "fn", "quote", "apply", "number?", "symbol?"} {
		v, err := env.Get(name)
		require.NoError(t, err, name)
		assert.True(t, v.IsSpecialOp(), name)
	}
	assert.Panics(t, func() { env.AddBuiltins() })
}

func TestInitializeUserEnvConfigError(t *testing.T) {
	env := NewEnv(nil)
	err := InitializeUserEnv(env, WithReader(nil))
	assert.Error(t, err)
	err = InitializeUserEnv(NewEnv(nil), WithLogger(nil))
	assert.Error(t, err)
}

func TestSession(t *testing.T) {
	root := NewEnv(nil)
	require.NoError(t, InitializeUserEnv(root))
	root.Put("inc", Closure([]string{"x"},
		SExpr([]*LVal{Symbol("+"), Symbol("x"), Number(1)}), root))

	const n = 16
	var wg sync.WaitGroup
	results := make([]*LVal, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env := root.Session()
			name := fmt.Sprintf("x%d", i)
			_, errs[i] = env.Eval(SExpr([]*LVal{Symbol("def"), Symbol(name), Number(float64(i))}))
			if errs[i] != nil {
				return
			}
			results[i], errs[i] = env.Eval(SExpr([]*LVal{Symbol("inc"), Symbol(name)}))
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Equal(Number(float64(i+1))), "session %d", i)
	}
	assert.Equal(t, 0, root.Runtime.Stack.Height())
	_, err := root.Get("x0")
	assert.ErrorIs(t, err, ErrUndefinedSymbol)
}

func TestSessionStack(t *testing.T) {
	root := NewEnv(nil)
	env := root.Session()
	assert.NotSame(t, root.Runtime, env.Runtime)
	assert.NotSame(t, root.Runtime.Stack, env.Runtime.Stack)
	assert.Equal(t, root.Runtime.Stack.MaxHeight, env.Runtime.Stack.MaxHeight)
	assert.Same(t, root.Runtime.Logger, env.Runtime.Logger)
	assert.Same(t, root, env.Parent)
}
