package cmd

import (
	"github.com/WilhelmBerggren/rs-lisp/repl"
	"github.com/spf13/cobra"
)

const replPrompt = "> "

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive repl",
	Long: `Start an interactive read-eval-print loop.  Each line is evaluated
against a persistent global environment.  Enter "exit" to quit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(replPrompt)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
