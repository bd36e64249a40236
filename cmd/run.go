package cmd

import (
	"os"

	"github.com/seashell-dev/seashell/core"
	"github.com/spf13/cobra"
)

var oneShot string

// runCmd starts the interactive interpreter.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive interpreter.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		shell, err := core.NewShell(configuration, os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}

		if oneShot != "" {
			shell.Eval(oneShot)
			shell.Close()
			os.Exit(shell.ExitStatus())
		}

		os.Exit(shell.Run())
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&oneShot, "command", "c", "", "run a single command line and exit")
	rootCmd.AddCommand(runCmd)
}
