package main

import (
	"fmt"

	"emotrack/internal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every stored declaration and resolution",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			return fmt.Errorf("refusing to reset without --yes")
		}
		return withToolkit(func(tk *internal.Toolkit) error {
			if err := tk.Reset(); err != nil {
				return err
			}
			fmt.Println(color.New(color.FgYellow).Sprint("Store cleared"))
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "confirm the reset")
}
