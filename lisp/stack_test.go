package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	require.NoError(t, s.Push(CallFrame{Name: "f", Closure: true}))
	require.NoError(t, s.Push(CallFrame{Name: "+"}))
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "+", s.Top().Name)

	err := s.Push(CallFrame{Name: "g"})
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.EqualError(t, err, "stack-overflow: maximum stack height exceeded (2) calling g")
	assert.Equal(t, 2, s.Height())

	cp := s.Copy()
	assert.Equal(t, "+", s.Pop().Name)
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 2, cp.Height())

	assert.Equal(t, "f", s.Pop().Name)
	assert.Panics(t, func() { s.Pop() })
}

func TestCallStackUnlimited(t *testing.T) {
	s := &CallStack{}
	for i := 0; i < 2*DefaultMaxStackHeight; i++ {
		require.NoError(t, s.Push(CallFrame{Name: "f"}))
	}
	assert.Equal(t, 2*DefaultMaxStackHeight, s.Height())
}

func TestCallStackDebugPrint(t *testing.T) {
	s := &CallStack{}
	require.NoError(t, s.Push(CallFrame{Name: "f", Closure: true}))
	require.NoError(t, s.Push(CallFrame{Name: "first"}))
	var buf bytes.Buffer
	_, err := s.DebugPrint(&buf)
	require.NoError(t, err)
	expect := `Stack Trace [2 frames -- entrypoint last]:
  height 1: first
  height 0: f [closure]
`
	assert.Equal(t, expect, buf.String())
}
