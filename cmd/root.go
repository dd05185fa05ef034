package cmd

import (
	"fmt"
	"os"

	"github.com/WilhelmBerggren/rs-lisp/repl"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootLogLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rs-lisp",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter with lexically scoped closures, a handful of
special operators (def, if, fn, quote, apply) and builtin functions (+, list,
first, rest, number?, symbol?).

When called without a subcommand an interactive repl is started.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(rootLogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(replPrompt)
	},
}

// Execute adds all child commands to the root command sets flags
// appropriately.  This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", log.WarnLevel.String(),
		"Diagnostic log level (debug traces every function call)")
}
