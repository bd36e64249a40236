package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/seashell-dev/seashell/core/config"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("No config.yaml found, using built-in defaults (run init to create one)")
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seashell",
	Short: "A small interactive command interpreter.",
	Long: `SeaShell reads one command line at a time and runs it: plain commands,
input/output redirection (<, >, >>), a single two-stage pipeline (|), and
background execution (&).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
