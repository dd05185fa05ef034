package lisp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberString(t *testing.T) {
	for _, test := range []struct {
		x      float64
		expect string
	}{
		{0, "0"},
		{42, "42"},
		{-3, "-3"},
		{0.5, "0.5"},
		{1e21, "1000000000000000000000"},
		{1.25e-7, "0.000000125"},
		{math.Inf(1), "+Inf"},
	} {
		assert.Equal(t, test.expect, Number(test.x).String(), "input: %v", test.x)
	}
}

func TestString(t *testing.T) {
	body := SExpr([]*LVal{Symbol("+"), Symbol("x"), Symbol("y")})
	for _, test := range []struct {
		v      *LVal
		expect string
	}{
		{Symbol("abc"), "abc"},
		{Nil(), "()"},
		{SExpr([]*LVal{Number(1), Nil(), SExpr([]*LVal{Symbol("a")})}), "(1 () (a))"},
		{Lambda([]string{"x", "y"}, body), "(fn (x y) (+ x y))"},
		{Lambda(nil, Number(1)), "(fn () 1)"},
		{Closure([]string{"x"}, Symbol("x"), NewEnv(nil)), "<closure>"},
		{Fun("+", builtinAdd), "<builtin-function ``+''>"},
		{SpecialOp("if", opIf), "<special-op ``if''>"},
	} {
		assert.Equal(t, test.expect, test.v.String())
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "builtin", LFun.String())
	assert.Equal(t, LFun, Fun("+", builtinAdd).Type)
	assert.Equal(t, LFun, SpecialOp("if", opIf).Type)
	assert.Equal(t, "number", LNumber.String())
	assert.Equal(t, "list", LSExpr.String())
	assert.Equal(t, "INVALID", LValType(100).String())
}

func TestEqual(t *testing.T) {
	env := NewEnv(nil)
	other := NewEnv(nil)
	body := SExpr([]*LVal{Symbol("+"), Symbol("x"), Number(1)})

	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Number(2)))
	assert.False(t, Number(1).Equal(Symbol("1")))
	assert.True(t, Symbol("a").Equal(Symbol("a")))
	assert.True(t, Nil().Equal(SExpr([]*LVal{})))

	nested := func() *LVal {
		return SExpr([]*LVal{Number(1), SExpr([]*LVal{Symbol("a"), Nil()})})
	}
	assert.True(t, nested().Equal(nested()))
	assert.False(t, nested().Equal(SExpr([]*LVal{Number(1)})))
	assert.False(t, nested().Equal(SExpr([]*LVal{Number(1), SExpr([]*LVal{Symbol("b"), Nil()})})))

	assert.True(t, Lambda([]string{"x"}, body).Equal(Lambda([]string{"x"}, body)))
	assert.False(t, Lambda([]string{"x"}, body).Equal(Lambda([]string{"y"}, body)))

	// closures compare environments by identity
	assert.True(t, Closure([]string{"x"}, body, env).Equal(Closure([]string{"x"}, body, env)))
	assert.False(t, Closure([]string{"x"}, body, env).Equal(Closure([]string{"x"}, body, other)))
	assert.False(t, Closure([]string{"x"}, body, env).Equal(Lambda([]string{"x"}, body)))

	assert.True(t, Fun("+", builtinAdd).Equal(Fun("+", builtinAdd)))
	assert.False(t, Fun("+", builtinAdd).Equal(SpecialOp("+", builtinAdd)))
	assert.False(t, Fun("+", builtinAdd).Equal(Fun("list", builtinList)))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true).Equal(Number(1)))
	assert.True(t, Bool(false).Equal(Number(0)))
}
