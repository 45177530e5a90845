// Package cli wires the commands: run (one translation pass over the
// staging directory), schedule (the same on a cron), prepare (tag raw
// text), export (plain-text rendering) and glossary maintenance.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

var (
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "tagged-doc-translator",
	Short: "Batch translator for line-tagged documents",
	Long: `tagged-doc-translator drives an LLM translation service over
documents whose lines carry data-line identity tags, growing a shared
glossary as it goes and reinserting translated lines in place.

Configuration is read from the environment; a .env file in the working
directory is loaded automatically.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine, the environment may be set directly.
		_ = godotenv.Load()

		level := log.LevelInfo
		if verbose {
			level = log.LevelDebug
		}
		if logFile != "" {
			return log.InitFileLogger(logFile, level)
		}
		log.InitLogger(level)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&logFile, "log-file", "", "Append logs to a file instead of stdout")
}
