package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// ContentWidth is the shared inner width for stacked panels so their
// borders line up. It is capped for wide terminals.
func ContentWidth(frameWidth, limit int) int {
	return max(20, min(frameWidth-6, limit))
}

// Frame draws the double outer border and centers content inside it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel boxes content at a fixed width with an optional heading.
func Panel(heading, content string, cw int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	if heading != "" {
		content = theme.Title.Render(heading) + "\n" + content
	}
	return style.Width(cw).Render(content)
}

// Button renders a fixed-width menu button.
func Button(label string, selected bool, width int) string {
	base := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return base.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight).
			Render("▸ " + label)
	}
	return base.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}
