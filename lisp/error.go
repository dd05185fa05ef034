package lisp

import (
	"errors"
	"fmt"
)

// Errno is an error code
type Errno int

// Posible Errno values
const (
	ErrnoPanic Errno = iota
	ErrnoSyntax
	ErrnoUndefinedSymbol
	ErrnoNotCallable
	ErrnoEmptyCall
	ErrnoArityMismatch
	ErrnoType
	ErrnoEmptyList
	ErrnoArgumentCount
	ErrnoStackOverflow
)

var errnoStrings = []string{
	ErrnoPanic:           "PANIC",
	ErrnoSyntax:          "syntax-error",
	ErrnoUndefinedSymbol: "undefined-symbol",
	ErrnoNotCallable:     "not-callable",
	ErrnoEmptyCall:       "empty-call",
	ErrnoArityMismatch:   "arity-mismatch",
	ErrnoType:            "type-error",
	ErrnoEmptyList:       "empty-list",
	ErrnoArgumentCount:   "argument-count-error",
	ErrnoStackOverflow:   "stack-overflow",
}

func (n Errno) String() string {
	if n < 0 || int(n) >= len(errnoStrings) {
		return errnoStrings[ErrnoPanic]
	}
	return errnoStrings[n]
}

// Sentinel errors for use with errors.Is.  An *Error matches a sentinel when
// their Errno values are equal.
var (
	ErrSyntax          = &Error{Errno: ErrnoSyntax}
	ErrUndefinedSymbol = &Error{Errno: ErrnoUndefinedSymbol}
	ErrNotCallable     = &Error{Errno: ErrnoNotCallable}
	ErrEmptyCall       = &Error{Errno: ErrnoEmptyCall}
	ErrArityMismatch   = &Error{Errno: ErrnoArityMismatch}
	ErrType            = &Error{Errno: ErrnoType}
	ErrEmptyList       = &Error{Errno: ErrnoEmptyList}
	ErrArgumentCount   = &Error{Errno: ErrnoArgumentCount}
	ErrStackOverflow   = &Error{Errno: ErrnoStackOverflow}
)

// Error is a failure raised while reading or evaluating an expression.  When
// raised during evaluation Stack holds a copy of the call stack at the point
// of failure.
type Error struct {
	Errno Errno
	Msg   string
	Stack *CallStack
}

// Errorf returns an *Error with the given code and a formatted message.
func Errorf(errno Errno, format string, v ...interface{}) *Error {
	return &Error{
		Errno: errno,
		Msg:   fmt.Sprintf(format, v...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Errno.String()
	}
	return e.Errno.String() + ": " + e.Msg
}

// Is allows errors.Is to match e against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Errno == t.Errno
}

// GetErrno returns the Errno of the first *Error in err's chain.  If err is
// nil or contains no *Error ErrnoPanic is returned.
func GetErrno(err error) Errno {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Errno
	}
	return ErrnoPanic
}

// Errorf returns an *Error annotated with a copy of the current call stack.
func (env *LEnv) Errorf(errno Errno, format string, v ...interface{}) *Error {
	lerr := Errorf(errno, format, v...)
	if env != nil && env.Runtime != nil && env.Runtime.Stack != nil {
		lerr.Stack = env.Runtime.Stack.Copy()
	}
	return lerr
}
