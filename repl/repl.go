package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/WilhelmBerggren/rs-lisp/lisp"
	"github.com/WilhelmBerggren/rs-lisp/parser"
	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
)

// ExitCommand is the input line which terminates the repl.
const ExitCommand = "exit"

// LineReader is the source of input lines for Loop.  A *readline.Instance is
// a LineReader.
type LineReader interface {
	Readline() (string, error)
}

// NewEnv returns a root environment holding the default builtins and
// special operators and configured to parse source with parser.NewReader.
func NewEnv(config ...lisp.Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	err := lisp.InitializeUserEnv(env, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	return env, nil
}

// EvalString evaluates the expression in source within env and returns the
// printed result or an error message.  If env is nil a fresh environment is
// used.
func EvalString(env *lisp.LEnv, source string) string {
	if env == nil {
		var err error
		env, err = NewEnv()
		if err != nil {
			return "Error: " + err.Error()
		}
	}
	return env.EvalString(source)
}

// RunRepl runs a simple repl
func RunRepl(prompt string) {
	env, err := NewEnv()
	if err != nil {
		log.Error(err)
		return
	}

	rl, err := readline.New(prompt)
	if err != nil {
		log.WithError(err).Error("unable to open terminal")
		return
	}
	defer rl.Close()

	err = Loop(env, rl, rl.Stdout())
	if err != nil {
		log.WithError(err).Error("repl terminated")
		return
	}
	errln("done")
}

// Loop reads lines from rl and evaluates each of them in env, writing the
// results to w.  Loop returns nil when the ExitCommand is read or the input
// ends.  An interrupt discards the current line.
func Loop(env *lisp.LEnv, rl LineReader, w io.Writer) error {
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == ExitCommand {
			return nil
		}
		if line == "" {
			continue
		}
		_, err = fmt.Fprintln(w, env.EvalString(line))
		if err != nil {
			return err
		}
	}
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
