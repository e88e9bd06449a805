package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/catalog"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List learning paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := catalog.AllPaths()

		fmt.Printf("%-24s  %-28s  %-12s  %-8s  %s\n", "ID", "Title", "Difficulty", "Months", "Phases")
		fmt.Println(strings.Repeat("─", 86))
		for _, p := range paths {
			fmt.Printf("%-24s  %-28s  %-12s  %-8s  %d\n",
				p.ID, p.Title, p.Difficulty,
				fmt.Sprintf("%d-%d", p.Duration.Min, p.Duration.Max), len(p.Phases))
		}
		fmt.Printf("\n%d paths\n", len(paths))
		return nil
	},
}

var pathsShowCmd = &cobra.Command{
	Use:   "show <path-id>",
	Short: "Show the phases, topics and projects of a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := catalog.GetPath(args[0])
		if err != nil {
			return fmt.Errorf("%w\nAvailable: %s", err, strings.Join(catalog.PathIDs(), ", "))
		}

		fmt.Printf("%s (%s)\n", p.Title, p.ID)
		fmt.Printf("  %s\n", p.Description)
		fmt.Printf("  Difficulty: %s   Duration: %d-%d months\n\n", p.Difficulty, p.Duration.Min, p.Duration.Max)
		for _, ph := range p.Phases {
			fmt.Printf("Phase %d: %s (%.1f weeks)\n", ph.Number, ph.Title, ph.Duration)
			fmt.Printf("  Topics:   %s\n", strings.Join(ph.Topics, ", "))
			if len(ph.Projects) > 0 {
				fmt.Printf("  Projects: %s\n", strings.Join(ph.Projects, ", "))
			}
		}
		return nil
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the assessment question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, section := range catalog.Sections() {
			fmt.Println(catalog.Category(section).DisplayName())
			for _, q := range catalog.Questions(section) {
				fmt.Printf("  %s  %s\n", q.ID, q.Text)
				for _, o := range q.Options {
					fmt.Printf("      %-20s %s\n", o.Value, o.Label)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	pathsCmd.AddCommand(pathsShowCmd)
}
