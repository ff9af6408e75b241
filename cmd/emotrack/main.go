package main

import (
	"fmt"
	"os"

	"emotrack/internal"
	"emotrack/internal/di"
	"emotrack/internal/structures"

	"github.com/spf13/cobra"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "emotrack",
	Short: "Employee well-being tracker",
	Long: `Collects morning and evening emotion declarations and serves role-scoped
dashboards, statistics and alerts over HTTP.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "./config/config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stderr")

	rootCmd.AddCommand(serveCmd, exportCmd, alertsCmd, declareCmd, resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withToolkit runs fn against the restored store and closes the log files.
func withToolkit(fn func(tk *internal.Toolkit) error) error {
	tk, err := di.InitToolkit(&flags)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer tk.Close()
	return fn(tk)
}
