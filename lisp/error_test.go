package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	lerr := Errorf(ErrnoEmptyList, "first: %s", "argument is an empty list")
	assert.EqualError(t, lerr, "empty-list: first: argument is an empty list")
	assert.ErrorIs(t, lerr, ErrEmptyList)
	assert.False(t, errors.Is(lerr, ErrType))
	assert.Nil(t, lerr.Stack)

	wrapped := fmt.Errorf("test.lisp: %w", lerr)
	assert.ErrorIs(t, wrapped, ErrEmptyList)
	assert.Equal(t, ErrnoEmptyList, GetErrno(wrapped))

	assert.Equal(t, ErrnoPanic, GetErrno(errors.New("test error message")))
	assert.Equal(t, ErrnoPanic, GetErrno(nil))
	assert.EqualError(t, ErrSyntax, "syntax-error")
}

func TestErrnoString(t *testing.T) {
	for errno, expect := range map[Errno]string{
		ErrnoSyntax:          "syntax-error",
		ErrnoUndefinedSymbol: "undefined-symbol",
		ErrnoNotCallable:     "not-callable",
		ErrnoEmptyCall:       "empty-call",
		ErrnoArityMismatch:   "arity-mismatch",
		ErrnoType:            "type-error",
		ErrnoEmptyList:       "empty-list",
		ErrnoArgumentCount:   "argument-count-error",
		ErrnoStackOverflow:   "stack-overflow",
		Errno(-1):            "PANIC",
		Errno(1000):          "PANIC",
	} {
		assert.Equal(t, expect, errno.String())
	}
}

func TestRuntimeErrors(t *testing.T) {
	env := NewEnv(nil)
	assert.NoError(t, env.Runtime.Stack.Push(CallFrame{Name: "f"}))
	lerr := env.Errorf(ErrnoType, "test error message")
	assert.EqualError(t, lerr, "type-error: test error message")
	if assert.NotNil(t, lerr.Stack) {
		assert.Equal(t, 1, lerr.Stack.Height())
	}
	env.Runtime.Stack.Pop()
	assert.Equal(t, 1, lerr.Stack.Height())
}
