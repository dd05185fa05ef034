package lisp

import "fmt"

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() []string
	Eval(env *LEnv, args *LVal) (*LVal, error)
}

type langBuiltin struct {
	name    string
	formals []string
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

// Eval checks the number of arguments against the builtin's formals and then
// invokes the builtin.
func (fun *langBuiltin) Eval(env *LEnv, args *LVal) (*LVal, error) {
	if n, variadic := countFormals(fun.formals); !variadic && args.Len() != n {
		return nil, berrf(env, fun.name, ErrnoArgumentCount, "%d %s expected (got %d)",
			n, pluralize("argument", n), args.Len())
	}
	return fun.fun(env, args)
}

// Formals returns a list of formal argument names.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

func countFormals(formals []string) (int, bool) {
	for i, name := range formals {
		if name == VarArgSymbol {
			return i, true
		}
	}
	return len(formals), false
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

var langBuiltins = []*langBuiltin{
	{"+", Formals(VarArgSymbol, "x"), builtinAdd},
	{"list", Formals(VarArgSymbol, "args"), builtinList},
	{"first", Formals("lis"), builtinFirst},
	{"rest", Formals("lis"), builtinRest},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	return ops
}

func builtinAdd(env *LEnv, args *LVal) (*LVal, error) {
	var sum float64
	for i, x := range args.Cells {
		if x.Type != LNumber {
			return nil, berrf(env, "+", ErrnoType, "argument %d is not a number: %v", i, x.Type)
		}
		sum += x.Num
	}
	return Number(sum), nil
}

func builtinList(env *LEnv, args *LVal) (*LVal, error) {
	cells := make([]*LVal, args.Len())
	copy(cells, args.Cells)
	return SExpr(cells), nil
}

func builtinFirst(env *LEnv, args *LVal) (*LVal, error) {
	lis, err := nonEmptyList(env, "first", args.Cells[0])
	if err != nil {
		return nil, err
	}
	return lis.Cells[0], nil
}

func builtinRest(env *LEnv, args *LVal) (*LVal, error) {
	lis, err := nonEmptyList(env, "rest", args.Cells[0])
	if err != nil {
		return nil, err
	}
	cells := make([]*LVal, lis.Len()-1)
	copy(cells, lis.Cells[1:])
	return SExpr(cells), nil
}

func nonEmptyList(env *LEnv, name string, v *LVal) (*LVal, error) {
	if v.Type != LSExpr {
		return nil, berrf(env, name, ErrnoType, "argument is not a list: %v", v.Type)
	}
	if v.Len() == 0 {
		return nil, berrf(env, name, ErrnoEmptyList, "argument is an empty list")
	}
	return v, nil
}

// berrf returns an error raised by the builtin bltn.
func berrf(env *LEnv, bltn string, errno Errno, format string, v ...interface{}) *Error {
	return env.Errorf(errno, "%s: %s", bltn, fmt.Sprintf(format, v...))
}
