package lisp

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Runtime is state shared by every environment taking part in a single
// evaluation.
type Runtime struct {
	Reader Reader
	Stack  *CallStack
	Stderr io.Writer
	Logger *logrus.Logger
}

// StandardRuntime returns a new Runtime with an empty call stack limited to
// DefaultMaxStackHeight frames.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stack:  &CallStack{MaxHeight: DefaultMaxStackHeight},
		Stderr: os.Stderr,
		Logger: logrus.StandardLogger(),
	}
}

func (r *Runtime) fork() *Runtime {
	return &Runtime{
		Reader: r.Reader,
		Stack:  &CallStack{MaxHeight: r.Stack.MaxHeight},
		Stderr: r.Stderr,
		Logger: r.Logger,
	}
}

// LEnv is a lisp environment.
type LEnv struct {
	ID      uint
	Parent  *LEnv
	Runtime *Runtime

	mu    sync.RWMutex
	scope map[string]*LVal
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent returns a
// root environment with a StandardRuntime, otherwise the new environment
// shares the runtime of its parent.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return newEnvRuntime(parent, runtime)
}

func newEnvRuntime(parent *LEnv, runtime *Runtime) *LEnv {
	return &LEnv{
		ID:      getEnvID(),
		Parent:  parent,
		Runtime: runtime,
		scope:   make(map[string]*LVal),
	}
}

// InitializeUserEnv binds the default builtins and special operators in env
// and then applies config.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	env.AddSpecialOps()
	env.AddBuiltins()
	for _, fn := range config {
		if err := fn(env); err != nil {
			return err
		}
	}
	return nil
}

// Session returns a child of env with a runtime of its own.  Independent
// goroutines should each evaluate within their own session so they do not
// share a call stack.
func (env *LEnv) Session() *LEnv {
	return newEnvRuntime(env, env.Runtime.fork())
}

// Get returns the value bound to name in the nearest environment along the
// parent chain of env.
func (env *LEnv) Get(name string) (*LVal, error) {
	for e := env; e != nil; e = e.Parent {
		e.mu.RLock()
		v, ok := e.scope[name]
		e.mu.RUnlock()
		if ok {
			return v, nil
		}
	}
	return nil, env.Errorf(ErrnoUndefinedSymbol, "%s", name)
}

// Put binds name to v in env.  Bindings in parent environments are never
// modified, only shadowed.
func (env *LEnv) Put(name string, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.mu.Lock()
	env.scope[name] = v
	env.mu.Unlock()
}

// Len returns the number of names bound locally in env.
func (env *LEnv) Len() int {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return len(env.scope)
}

// AddSpecialOps binds the given special operators to their names in env.
// When called with no arguments AddSpecialOps adds the DefaultSpecialOps to
// env.
func (env *LEnv) AddSpecialOps(ops ...LBuiltinDef) {
	if len(ops) == 0 {
		ops = DefaultSpecialOps()
	}
	for _, op := range ops {
		if _, err := env.Get(op.Name()); err == nil {
			panic(fmt.Sprintf("special operator already defined: %s", op.Name()))
		}
		env.Put(op.Name(), SpecialOp(op.Name(), op.Eval))
	}
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		if _, err := env.Get(f.Name()); err == nil {
			panic("symbol already defined: " + f.Name())
		}
		env.Put(f.Name(), Fun(f.Name(), f.Eval))
	}
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	switch v.Type {
	case LSymbol:
		return env.Get(v.Str)
	case LSExpr:
		return env.EvalSExpr(v)
	case LLambda:
		// The only point at which an environment is captured.
		return Closure(v.Formals, v.Body, env), nil
	case LNumber, LClosure, LFun:
		return v, nil
	default:
		return nil, env.Errorf(ErrnoType, "cannot evaluate value of type %v", v.Type)
	}
}

// EvalSExpr evaluates s and returns the resulting LVal.
func (env *LEnv) EvalSExpr(s *LVal) (*LVal, error) {
	if s.Type != LSExpr {
		return nil, env.Errorf(ErrnoType, "not an s-expression: %v", s.Type)
	}
	if len(s.Cells) == 0 {
		return nil, env.Errorf(ErrnoEmptyCall, "cannot evaluate an empty list")
	}

	f, err := env.Eval(s.Cells[0])
	if err != nil {
		return nil, err
	}
	if !f.IsCallable() {
		return nil, env.Errorf(ErrnoNotCallable, "first element of expression is not a function: %v", f)
	}
	if err := env.checkArity(f, len(s.Cells)-1); err != nil {
		return nil, err
	}

	args := s.Cells[1:]
	if !f.IsSpecialOp() {
		// Evaluate arguments left to right in the caller's environment
		// before invoking f.
		vals := make([]*LVal, len(args))
		for i := range args {
			vals[i], err = env.Eval(args[i])
			if err != nil {
				return nil, err
			}
		}
		args = vals
	}
	return env.call(callName(s.Cells[0], f), f, args)
}

// Call invokes fun with the list args.  The elements of args are passed to
// fun as they are.  Builtin functions receive them as evaluated values and
// special operators receive them as argument expressions.
func (env *LEnv) Call(fun *LVal, args *LVal) (*LVal, error) {
	if !fun.IsCallable() {
		return nil, env.Errorf(ErrnoNotCallable, "value is not a function: %v", fun)
	}
	if args.Type != LSExpr {
		return nil, env.Errorf(ErrnoType, "argument list is not a list: %v", args.Type)
	}
	if err := env.checkArity(fun, args.Len()); err != nil {
		return nil, err
	}
	return env.call(callName(nil, fun), fun, args.Cells)
}

func (env *LEnv) call(name string, fun *LVal, args []*LVal) (*LVal, error) {
	stack := env.Runtime.Stack
	err := stack.Push(CallFrame{Name: name, Closure: fun.Type == LClosure})
	if err != nil {
		return nil, err
	}
	defer stack.Pop()
	env.logCall(name, stack.Height())

	if fun.Type == LFun {
		return fun.Builtin(env, SExpr(args))
	}

	// The call environment is a child of the closure's environment, not of
	// env, giving lexical scope.  It shares env's runtime so that the
	// caller's stack keeps growing.
	callenv := newEnvRuntime(fun.Env, env.Runtime)
	for i, formal := range fun.Formals {
		callenv.Put(formal, args[i])
	}
	return callenv.Eval(fun.Body)
}

func (env *LEnv) logCall(name string, height int) {
	log := env.Runtime.Logger
	if log == nil || !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	log.WithFields(logrus.Fields{
		"env":    env.ID,
		"height": height,
	}).Debugf("call %s", name)
}

func (env *LEnv) checkArity(fun *LVal, nargs int) error {
	if fun.Type != LClosure {
		return nil
	}
	if nargs != len(fun.Formals) {
		return env.Errorf(ErrnoArityMismatch, "function expects %d arguments (got %d)",
			len(fun.Formals), nargs)
	}
	return nil
}

func callName(head *LVal, fun *LVal) string {
	if head != nil && head.Type == LSymbol {
		return head.Str
	}
	if fun.Type == LFun {
		return fun.Str
	}
	return "<anonymous>"
}

// Read parses source using the runtime's Reader.
func (env *LEnv) Read(source string) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, fmt.Errorf("no reader configured")
	}
	return env.Runtime.Reader.Read([]byte(source))
}

// EvalString reads a single expression from source and evaluates it in env.
// The printed value is returned, or a message describing the failure.
// EvalString never returns an error.
func (env *LEnv) EvalString(source string) string {
	v, err := env.Read(source)
	if err != nil {
		return "Error: " + err.Error()
	}
	result, err := env.Eval(v)
	if err != nil {
		return "Error: " + err.Error()
	}
	return result.String()
}
