package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/roadmap"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap [path-id]",
	Short: "Generate a personalized roadmap, or show the active one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if len(args) == 0 {
			r := e.session.Engine().Roadmap()
			if r == nil {
				return fmt.Errorf("no active roadmap: run pathwise roadmap <path-id>")
			}
			phase, day := e.session.Engine().Position()
			printRoadmap(r, phase, day)
			return nil
		}

		months, _ := cmd.Flags().GetFloat64("months")
		if months <= 0 {
			months = e.cfg.Engine.DefaultMonths
		}
		r, err := e.session.StartRoadmap(cmd.Context(), args[0], months)
		if err != nil {
			return err
		}
		printRoadmap(r, 1, 1)
		fmt.Println("\nNext: pathwise tasks")
		return nil
	},
}

func init() {
	roadmapCmd.Flags().Float64("months", 0, "Target timeframe in months (default from config)")
}

func printRoadmap(r *roadmap.Roadmap, phase, day int) {
	fmt.Printf("%s  (%s, %.1f months, %.1f weeks planned)\n", r.Title, r.Difficulty, r.TotalDuration, r.TotalWeeks())
	fmt.Printf("  Success prediction: %.0f%%\n", r.SuccessPrediction*100)
	s := r.Schedule
	fmt.Printf("  Schedule: %.1f h/day, %d sessions/day, break every %d min, %d study / %d rest days\n\n",
		s.DailyHours, s.SessionsPerDay, s.BreakInterval, s.StudyDays, s.RestDays)

	for _, ph := range r.Phases {
		marker := "  "
		if ph.Number == phase {
			marker = "▸ "
		}
		fmt.Printf("%sPhase %d: %s (%.1f weeks)\n", marker, ph.Number, ph.Title, ph.Duration)
		fmt.Printf("    %s\n", strings.Join(ph.Topics, ", "))
	}
	fmt.Printf("\nCurrently: phase %d, day %d of %d\n", phase, day, r.PhaseDays(phase))
}
