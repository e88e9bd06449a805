package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// TextInput wraps bubbles/textinput. With Numeric set it only accepts
// digits and a single decimal point.
type TextInput struct {
	Model     textinput.Model
	Numeric   bool
	submitted bool
	valid     bool
}

// NewTextInput creates a focused input. charLimit 0 means unlimited.
func NewTextInput(placeholder string, numeric bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Numeric: numeric}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Numeric {
		if kmsg, ok := msg.(tea.KeyMsg); ok && !t.acceptsNumeric(kmsg.String()) {
			return t, nil
		}
	}
	t.submitted = false

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// acceptsNumeric filters printable keys; control keys always pass.
func (t TextInput) acceptsNumeric(key string) bool {
	if len(key) != 1 {
		return true
	}
	switch c := key[0]; {
	case c >= '0' && c <= '9':
		return true
	case c == '.':
		return !strings.Contains(t.Model.Value(), ".")
	}
	return false
}

func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// FloatValue parses the input as a decimal number.
func (t TextInput) FloatValue() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(t.Model.Value()), 64)
}

// Reset clears the value and any submission mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.submitted = false
}

// Submit marks the input with a validation result until the next edit.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
