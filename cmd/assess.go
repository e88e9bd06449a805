package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/profile"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take the learner assessment",
	Long: `Score assessment answers into a learner profile.

Answers come from a JSON file mapping question ids to option values
(--answers), from repeated --answer id=value flags, or interactively when
neither is given. Run "pathwise questions" to see the ids and values.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().String("answers", "", "JSON file of {\"question-id\": \"option-value\"}")
	assessCmd.Flags().StringArray("answer", nil, "Single answer as question-id=option-value (repeatable)")
}

func runAssess(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("answers")
	pairs, _ := cmd.Flags().GetStringArray("answer")

	var (
		answers map[string]string
		err     error
	)
	switch {
	case file != "" && len(pairs) > 0:
		return fmt.Errorf("use --answers or --answer, not both")
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
		if answers, err = profile.ParseAnswers(raw); err != nil {
			return err
		}
	case len(pairs) > 0:
		if answers, err = parseAnswerPairs(pairs); err != nil {
			return err
		}
	default:
		if answers, err = promptAnswers(os.Stdin, os.Stdout); err != nil {
			return err
		}
	}

	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.session.Assess(cmd.Context(), answers)
	if err != nil {
		return err
	}
	printProfile(p)
	fmt.Println("\nNext: pathwise roadmap <path-id>   (see pathwise paths)")
	return nil
}

func parseAnswerPairs(pairs []string) (map[string]string, error) {
	answers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid --answer %q, want question-id=option-value", pair)
		}
		answers[strings.TrimSpace(id)] = strings.TrimSpace(value)
	}
	return answers, nil
}

// promptAnswers walks the question bank, reading a 1-based option number
// per question. Empty input skips a question.
func promptAnswers(in io.Reader, out io.Writer) (map[string]string, error) {
	scanner := bufio.NewScanner(in)
	answers := make(map[string]string)

	for _, section := range catalog.Sections() {
		fmt.Fprintf(out, "\n== %s ==\n", catalog.Category(section).DisplayName())
		for _, q := range catalog.Questions(section) {
			fmt.Fprintf(out, "\n%s\n", q.Text)
			for i, o := range q.Options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, o.Label)
			}
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					if err := scanner.Err(); err != nil {
						return nil, err
					}
					return answers, nil
				}
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					break
				}
				n, err := strconv.Atoi(text)
				if err != nil || n < 1 || n > len(q.Options) {
					fmt.Fprintf(out, "Enter a number from 1 to %d.\n", len(q.Options))
					continue
				}
				answers[q.ID] = q.Options[n-1].Value
				break
			}
		}
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("no questions answered")
	}
	return answers, nil
}

func printProfile(p profile.Profile) {
	fmt.Println("Learner profile")
	fmt.Printf("  Learning speed     %.1f / 5\n", p.LearningSpeed)
	fmt.Printf("  Experience         %.1f / 5\n", p.ExperienceLevel)
	fmt.Printf("  Time commitment    %.1f / 5\n", p.TimeCommitment)
	fmt.Printf("  Focus              %.1f / 5\n", p.FocusCapability)
	fmt.Printf("  Motivation         %.1f / 5\n", p.Motivation)
	fmt.Printf("  Preferred style    %s\n", p.PreferredStyle)
	if len(p.Strengths) > 0 {
		fmt.Printf("  Strengths          %s\n", strings.Join(p.Strengths, ", "))
	}
	if len(p.Challenges) > 0 {
		fmt.Printf("  Challenges         %s\n", strings.Join(p.Challenges, ", "))
	}
}
