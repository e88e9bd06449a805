package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark one of today's tasks as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetFloat64("hours")
		grade, _ := cmd.Flags().GetString("grade")
		quality, _ := cmd.Flags().GetString("quality")
		submission, _ := cmd.Flags().GetString("submission")
		if hours < 0 {
			return fmt.Errorf("--hours must not be negative")
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		task, entry, err := e.session.Complete(cmd.Context(), args[0], hours, submission, grade, quality)
		if err != nil {
			return err
		}
		fmt.Printf("Completed %q\n", task.Title)
		fmt.Printf("  Estimated %.1f h, spent %.1f h, efficiency %.0f%%\n", task.EstimatedTime, task.ActualTime, entry.Efficiency)

		a := e.session.Engine().LearningAnalytics()
		fmt.Printf("  %d tasks completed, average efficiency %.0f%%\n", a.TotalTasksCompleted, a.AverageEfficiency)
		return nil
	},
}

func init() {
	completeCmd.Flags().Float64("hours", 0, "Hours actually spent (required)")
	completeCmd.Flags().String("grade", "", "Optional grade")
	completeCmd.Flags().String("quality", "", "Optional self-assessed quality")
	completeCmd.Flags().String("submission", "", "Optional submission type (code, notes, ...)")
	_ = completeCmd.MarkFlagRequired("hours")
}
