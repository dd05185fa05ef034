package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LSymbol
	LNumber
	LSExpr
	LLambda
	LClosure
	LFun
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LSymbol:  "symbol",
	LNumber:  "number",
	LSExpr:   "list",
	LLambda:  "lambda",
	LClosure: "closure",
	LFun:     "builtin",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LFunType distinguishes builtins that receive evaluated arguments from
// special operators that receive raw argument expressions.
type LFunType uint

// Possible LFunType values
const (
	LFunNone LFunType = iota
	LFunSpecialOp
)

// LBuiltin is a native function invoked with the calling environment and
// its argument list.
type LBuiltin func(env *LEnv, args *LVal) (*LVal, error)

// LVal is a lisp value.  Every value is also an expression that can be
// evaluated.
type LVal struct {
	Type LValType

	Num   float64
	Str   string
	Cells []*LVal

	// Variables needed for function values
	FunType LFunType
	Builtin LBuiltin
	Env     *LEnv
	Formals []string
	Body    *LVal
}

// Number returns an LVal representing the number x.
func Number(x float64) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// Bool returns the number 1 if ok is true and 0 otherwise.  The language has
// no boolean type.
func Bool(ok bool) *LVal {
	if ok {
		return Number(1)
	}
	return Number(0)
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// SExpr returns an LVal representing an S-expression, a list holding cells.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// Nil returns an empty list.
func Nil() *LVal {
	return SExpr(nil)
}

// Lambda returns an anonymous function literal that has formals as arguments
// and the given body.  A lambda is not bound to any environment until it is
// evaluated.
func Lambda(formals []string, body *LVal) *LVal {
	return &LVal{
		Type:    LLambda,
		Formals: formals,
		Body:    body,
	}
}

// Closure returns a function value bound to env.  The environment is shared,
// not copied.
func Closure(formals []string, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LClosure,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// Fun returns an LVal representing a builtin function which receives its
// arguments already evaluated.
func Fun(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		Str:     name,
		Builtin: fn,
	}
}

// SpecialOp returns an LVal representing a special operator.  Special
// operators receive their arguments unevaluated.
func SpecialOp(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		Str:     name,
		FunType: LFunSpecialOp,
		Builtin: fn,
	}
}

// IsSpecialOp returns true if v is a builtin special operator.
func (v *LVal) IsSpecialOp() bool {
	return v.Type == LFun && v.FunType == LFunSpecialOp
}

// IsCallable returns true if v may appear at the head of a call expression.
func (v *LVal) IsCallable() bool {
	return v.Type == LClosure || v.Type == LFun
}

// Len returns the number of cells in v.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// Equal reports whether v and other are structurally equal.  Closures are
// only equal when they share the same environment.
func (v *LVal) Equal(other *LVal) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNumber:
		return v.Num == other.Num
	case LSymbol:
		return v.Str == other.Str
	case LSExpr:
		return cellsEqual(v.Cells, other.Cells)
	case LLambda:
		return formalsEqual(v.Formals, other.Formals) && v.Body.Equal(other.Body)
	case LClosure:
		return v.Env == other.Env &&
			formalsEqual(v.Formals, other.Formals) &&
			v.Body.Equal(other.Body)
	case LFun:
		return v.Str == other.Str && v.FunType == other.FunType
	default:
		return false
	}
}

func cellsEqual(a, b []*LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func formalsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (v *LVal) String() string {
	switch v.Type {
	case LNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case LSymbol:
		return v.Str
	case LSExpr:
		return exprString(v, "(", ")")
	case LLambda:
		return fmt.Sprintf("(fn (%s) %v)", strings.Join(v.Formals, " "), v.Body)
	case LClosure:
		return "<closure>"
	case LFun:
		if v.IsSpecialOp() {
			return fmt.Sprintf("<special-op ``%s''>", v.Str)
		}
		return fmt.Sprintf("<builtin-function ``%s''>", v.Str)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func exprString(v *LVal, left string, right string) string {
	if len(v.Cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
