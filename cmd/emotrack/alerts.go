package main

import (
	"fmt"
	"io"
	"os"

	"emotrack/internal"
	"emotrack/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	alertsAll     bool
	alertsResolve string
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List open alerts, or resolve one by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToolkit(func(tk *internal.Toolkit) error {
			if alertsResolve != "" {
				if err := tk.Dashboard.ResolveAlert(cmd.Context(), alertsResolve); err != nil {
					return err
				}
				fmt.Printf("Alert %s resolved\n", alertsResolve)
				return nil
			}

			list, err := tk.Dashboard.OrganizationAlerts(cmd.Context())
			if err != nil {
				return err
			}
			printAlerts(os.Stdout, list, alertsAll)
			return nil
		})
	},
}

func init() {
	alertsCmd.Flags().BoolVarP(&alertsAll, "all", "a", false, "include resolved alerts")
	alertsCmd.Flags().StringVar(&alertsResolve, "resolve", "", "mark the alert with this id as resolved")
}

func printAlerts(w io.Writer, list []models.Alert, all bool) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	shown := 0
	fmt.Fprintf(w, "%s\n", cyan("=== Alerts ==="))
	for _, a := range list {
		if a.Resolved && !all {
			continue
		}
		shown++
		kind := yellow(string(a.Kind))
		if a.Kind == models.AlertConsecutiveNegative {
			kind = red(string(a.Kind))
		}
		line := fmt.Sprintf("%s  %-22s %-10s %s", a.Date, kind, a.Scope, a.Message)
		if a.Resolved {
			line = gray(line + " (resolved)")
		}
		fmt.Fprintf(w, "%s\n      id: %s\n", line, a.ID)
	}
	if shown == 0 {
		fmt.Fprintln(w, "No open alerts")
	}
}
