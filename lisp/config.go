package lisp

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) error

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the height of its call stack to exceed n.  A
// value of zero or less removes the limit, leaving deep recursion bounded
// only by the Go stack.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) error {
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// text.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		if r == nil {
			return fmt.Errorf("nil reader")
		}
		env.Runtime.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that makes environments trace calls to
// logger.  Calls are logged at the debug level.  The default logger is
// logrus.StandardLogger().
func WithLogger(logger *logrus.Logger) Config {
	return func(env *LEnv) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		env.Runtime.Logger = logger
		return nil
	}
}
