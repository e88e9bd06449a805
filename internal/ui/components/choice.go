package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// Choice is a single-answer selector. Options can be picked with the arrow
// keys and enter, or directly by their letter.
type Choice struct {
	Prompt   string
	Options  []string
	Selected int
	Chosen   int // -1 until an option is picked
}

// NewChoice creates a Choice with the cursor on preselect, or on the first
// option when preselect is out of range.
func NewChoice(prompt string, options []string, preselect int) Choice {
	if preselect < 0 || preselect >= len(options) {
		preselect = 0
	}
	return Choice{
		Prompt:   prompt,
		Options:  options,
		Selected: preselect,
		Chosen:   -1,
	}
}

// Done reports whether an option has been picked.
func (c Choice) Done() bool { return c.Chosen >= 0 }

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Done() {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
	default:
		if len(key) == 1 {
			if i := int(strings.ToLower(key)[0] - 'a'); i >= 0 && i < len(c.Options) {
				c.Selected = i
				c.Chosen = i
			}
		}
	}
	return c, nil
}

func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		style := theme.Unselected
		switch {
		case c.Done() && i == c.Chosen:
			prefix, style = "✓ ", theme.Done
		case !c.Done() && i == c.Selected:
			prefix, style = "▸ ", theme.Selected
		case c.Done():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
