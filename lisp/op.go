package lisp

var langSpecialOps = []*langBuiltin{
	{"quote", Formals("expr"), opQuote},
	{"def", Formals("sym", "expr"), opDef},
	{"fn", Formals("formals", "body"), opFn},
	{"if", Formals("condition", "then", "else"), opIf},
	{"apply", Formals("fun", "lis"), opApply},
	{"number?", Formals("expr"), opIsNumber},
	{"symbol?", Formals("expr"), opIsSymbol},
}

// DefaultSpecialOps returns the default set of LBuiltinDef added to LEnv
// objects when LEnv.AddSpecialOps is called without arguments.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range langSpecialOps {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

func opQuote(env *LEnv, args *LVal) (*LVal, error) {
	return args.Cells[0], nil
}

// (def name expr)
func opDef(env *LEnv, args *LVal) (*LVal, error) {
	sym := args.Cells[0]
	if sym.Type != LSymbol {
		return nil, berrf(env, "def", ErrnoType, "first argument is not a symbol: %v", sym.Type)
	}
	val, err := env.Eval(args.Cells[1])
	if err != nil {
		return nil, err
	}
	env.Put(sym.Str, val)
	return Symbol(sym.Str), nil
}

// (fn (formal ...) body)
//
// fn returns a closure rather than a lambda, so a fn expression prints as
// <closure> and may appear at the head of a call.
func opFn(env *LEnv, args *LVal) (*LVal, error) {
	formals := args.Cells[0]
	if formals.Type != LSExpr {
		return nil, berrf(env, "fn", ErrnoType, "first argument is not a list: %v", formals.Type)
	}
	names := make([]string, formals.Len())
	for i, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return nil, berrf(env, "fn", ErrnoType, "first argument contains a non-symbol: %v", sym.Type)
		}
		names[i] = sym.Str
	}
	// The lambda is evaluated where fn was invoked so that it captures that
	// environment.
	return env.Eval(Lambda(names, args.Cells[1]))
}

// (if test-form then-form else-form)
func opIf(env *LEnv, args *LVal) (*LVal, error) {
	r, err := env.Eval(args.Cells[0])
	if err != nil {
		return nil, err
	}
	if r.Type != LNumber {
		return nil, berrf(env, "if", ErrnoType, "condition is not a number: %v", r.Type)
	}
	if r.Num != 0 {
		return env.Eval(args.Cells[1])
	}
	return env.Eval(args.Cells[2])
}

// (apply fun lis)
func opApply(env *LEnv, args *LVal) (*LVal, error) {
	fun, err := env.Eval(args.Cells[0])
	if err != nil {
		return nil, err
	}
	lis, err := env.Eval(args.Cells[1])
	if err != nil {
		return nil, err
	}
	if lis.Type != LSExpr {
		return nil, berrf(env, "apply", ErrnoType, "second argument is not a list: %v", lis.Type)
	}
	return env.Call(fun, lis)
}

func opIsNumber(env *LEnv, args *LVal) (*LVal, error) {
	return Bool(args.Cells[0].Type == LNumber), nil
}

func opIsSymbol(env *LEnv, args *LVal) (*LVal, error) {
	return Bool(args.Cells[0].Type == LSymbol), nil
}
