// Package lisptest runs sequences of lisp expressions against fresh
// environments and compares their printed results.
package lisptest

import (
	"testing"

	"github.com/WilhelmBerggren/rs-lisp/lisp"
	"github.com/WilhelmBerggren/rs-lisp/repl"
)

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or "Error: " followed by the message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite, config ...lisp.Config) {
	t.Helper()
	for i, test := range tests {
		env, err := repl.NewEnv(config...)
		if err != nil {
			t.Fatalf("test %d %q: failed to initialize lisp environment: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			result := env.EvalString(expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}
