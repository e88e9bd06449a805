package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning analytics and recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.session.Stats(cmd.Context())
		if err != nil {
			return err
		}
		a := st.Analytics

		fmt.Println("Learning analytics")
		fmt.Printf("  Tasks completed     %d\n", a.TotalTasksCompleted)
		fmt.Printf("  Time spent          %.1f h (%.1f h per task)\n", a.TimeSpentTotal, a.AverageTaskTime)
		fmt.Printf("  Average efficiency  %.0f%%\n", a.AverageEfficiency)
		fmt.Printf("  Consistency         %.0f%%\n", a.ConsistencyRate*100)
		if len(a.StrongAreas) > 0 {
			fmt.Printf("  Strong areas        %s\n", strings.Join(a.StrongAreas, ", "))
		}
		if len(a.ImprovementAreas) > 0 {
			fmt.Printf("  Improvement areas   %s\n", strings.Join(a.ImprovementAreas, ", "))
		}
		if st.Journal.Count != a.TotalTasksCompleted {
			fmt.Printf("  Journal             %d tasks, %.1f h across all sessions\n", st.Journal.Count, st.Journal.Hours)
		}

		if len(st.Areas) > 0 {
			fmt.Println("\nBy topic")
			for _, area := range st.Areas {
				fmt.Printf("  %-28s %3d tasks  %4.0f%%\n", area.Category, area.Count, area.AverageEfficiency)
			}
		}

		if len(a.RecentTasks) > 0 {
			fmt.Println("\nRecent")
			for _, t := range a.RecentTasks {
				fmt.Printf("  %s  %-16s %4.1f h  %4.0f%%\n", t.CompletedAt.Format("2006-01-02"), t.TaskID, t.TimeSpent, t.Efficiency)
			}
		}

		if len(st.Recommendations) > 0 {
			fmt.Println("\nRecommendations")
			for _, r := range st.Recommendations {
				fmt.Printf("  [%s] %s\n", r.Priority, r.Title)
				fmt.Printf("      %s\n", r.Description)
				fmt.Printf("      Expected: %s\n", r.ExpectedImprovement)
			}
		}
		return nil
	},
}
