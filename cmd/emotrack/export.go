package main

import (
	"fmt"
	"os"

	"emotrack/internal"
	"emotrack/internal/export"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored declaration as CSV or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		return withToolkit(func(tk *internal.Toolkit) error {
			out, err := export.Serialize(tk.Store.All(), format, tk.Store.Now())
			if err != nil {
				return err
			}
			if exportOutput == "-" {
				_, err = os.Stdout.Write(out.Data)
				return err
			}

			path := exportOutput
			if path == "" {
				path = out.Filename
			}
			if err := os.WriteFile(path, out.Data, 0644); err != nil {
				return err
			}
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(os.Stderr, "%s %d records written to %s\n", green("✓"), tk.Store.Len(), path)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout (default: emotions-<date>.<ext>)")
}
