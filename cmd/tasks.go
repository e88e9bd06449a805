package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/taskgen"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show today's tasks, generating them if needed",
	Long: `Show the current day's tasks. With --phase/--day a fresh set is generated
for that position; with --next the roadmap advances one study day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		next, _ := cmd.Flags().GetBool("next")
		phaseChanged, dayChanged := cmd.Flags().Changed("phase"), cmd.Flags().Changed("day")

		var tasks []taskgen.Task
		switch {
		case next && (phaseChanged || dayChanged):
			return fmt.Errorf("use --next or --phase/--day, not both")
		case next:
			var done bool
			tasks, done, err = e.session.NextDay(ctx)
			if done {
				fmt.Println("You've reached the last day of your roadmap. 🎉")
			}
		case phaseChanged || dayChanged:
			phase, day := e.session.Engine().Position()
			if phaseChanged {
				phase, _ = cmd.Flags().GetInt("phase")
			}
			if dayChanged {
				day, _ = cmd.Flags().GetInt("day")
			}
			tasks, err = e.session.Generate(ctx, phase, day)
		default:
			tasks, err = e.session.Today(ctx)
		}
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks for that phase.")
			return nil
		}
		printTasks(tasks)
		return nil
	},
}

func init() {
	tasksCmd.Flags().Int("phase", 0, "Phase number (1-based)")
	tasksCmd.Flags().Int("day", 0, "Day number within the phase")
	tasksCmd.Flags().Bool("next", false, "Advance to the next study day")
}

func printTasks(tasks []taskgen.Task) {
	fmt.Printf("Phase %d, day %d\n\n", tasks[0].Phase, tasks[0].Day)
	fmt.Printf("  %-16s  %-3s  %-8s  %-6s  %-5s  %s\n", "ID", "", "Type", "Prio", "Hours", "Title")
	fmt.Println("  " + strings.Repeat("─", 84))
	for _, t := range tasks {
		check := "[ ]"
		if t.Status == taskgen.StatusCompleted {
			check = "[x]"
		}
		fmt.Printf("  %-16s  %-3s  %-8s  %-6s  %5.1f  %s\n", t.ID, check, t.Type, t.Priority, t.EstimatedTime, t.Title)
	}
	fmt.Println("\nComplete one with: pathwise complete <id> --hours H")
}
