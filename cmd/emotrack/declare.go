package main

import (
	"fmt"
	"time"

	"emotrack/internal"
	"emotrack/internal/models"

	"github.com/spf13/cobra"
)

var declaration models.Declaration

var declareCmd = &cobra.Command{
	Use:   "declare",
	Short: "Record a declaration without going through the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToolkit(func(tk *internal.Toolkit) error {
			d := declaration
			if d.Date == "" {
				d.Date = models.FormatDate(tk.Store.Now())
			}
			saved, err := tk.Declare(d)
			if err != nil {
				return err
			}
			fmt.Printf("Stored %s (%s) at %s\n", saved.ID, saved.Emotion, saved.RecordedAt.Format(time.RFC3339))
			return nil
		})
	},
}

func init() {
	declareCmd.Flags().StringVarP(&declaration.SubjectID, "subject", "s", "", "subject id")
	declareCmd.Flags().StringVar(&declaration.Date, "date", "", "day in YYYY-MM-DD (default: today)")
	declareCmd.Flags().StringVarP(&declaration.Period, "period", "p", "", "morning or evening")
	declareCmd.Flags().StringVarP(&declaration.Emotion, "emotion", "e", "", "happy, sad, neutral, stressed, excited or tired")
	declareCmd.Flags().StringVar(&declaration.Comment, "comment", "", "optional comment")
	_ = declareCmd.MarkFlagRequired("subject")
	_ = declareCmd.MarkFlagRequired("period")
	_ = declareCmd.MarkFlagRequired("emotion")
}
