package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/WilhelmBerggren/rs-lisp/lisp"
	"github.com/WilhelmBerggren/rs-lisp/parser"
	"github.com/WilhelmBerggren/rs-lisp/repl"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	runExpression     bool
	runPrint          bool
	runStackTrace     bool
	runMaxStackHeight int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exprs, err := runReadExpressions(args, runExpression)
		if err != nil {
			log.Fatal(err)
		}
		log.WithField("count", len(exprs)).Debug("read expressions")

		env, err := repl.NewEnv(
			lisp.WithMaximumStackHeight(runMaxStackHeight),
			lisp.WithStderr(os.Stderr),
		)
		if err != nil {
			log.Fatal(err)
		}
		err = runEval(env, exprs, os.Stdout, runPrint)
		if err != nil {
			if runStackTrace {
				runDebugStack(env.Runtime.Stderr, err)
			}
			log.Fatal(err)
		}
	},
}

func runReadExpressions(args []string, isExpr bool) ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for _, arg := range args {
		var source []byte
		if isExpr {
			source = []byte(arg)
		} else {
			b, err := os.ReadFile(arg)
			if err != nil {
				return nil, err
			}
			source = b
		}
		v, err := parser.ReadAll(source)
		if err != nil {
			if !isExpr {
				return nil, fmt.Errorf("%s: %w", arg, err)
			}
			return nil, err
		}
		exprs = append(exprs, v...)
	}
	return exprs, nil
}

func runEval(env *lisp.LEnv, exprs []*lisp.LVal, w io.Writer, printValues bool) error {
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return err
		}
		if printValues {
			fmt.Fprintln(w, v)
		}
	}
	return nil
}

func runDebugStack(w io.Writer, err error) {
	var lerr *lisp.Error
	if errors.As(err, &lerr) && lerr.Stack != nil {
		lerr.Stack.DebugPrint(w)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().BoolVarP(&runStackTrace, "stack-trace", "s", false,
		"Print the call stack when evaluation fails")
	runCmd.Flags().IntVar(&runMaxStackHeight, "max-stack-height", lisp.DefaultMaxStackHeight,
		"Maximum call stack height (zero for no limit)")
}
