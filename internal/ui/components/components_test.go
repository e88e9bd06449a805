package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var (
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected cursor on first enabled item, got %d", m.Selected)
	}

	m, _ = m.Update(keyDown)
	if m.Selected != 3 {
		t.Errorf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(keyDown)
	if m.Selected != 3 {
		t.Errorf("expected cursor to stay at bottom, got %d", m.Selected)
	}
	m, _ = m.Update(keyUp)
	if m.Selected != 1 {
		t.Errorf("expected up to skip disabled item, got %d", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(keyEnter)
	if !ran {
		t.Error("expected enter to run the action")
	}
	if !strings.Contains(m.View(), "▸ go") {
		t.Errorf("expected cursor glyph in view, got %q", m.View())
	}
}

func TestChoiceArrowAndEnter(t *testing.T) {
	c := NewChoice("Pick", []string{"one", "two", "three"}, -1)
	c, _ = c.Update(keyDown)
	c, _ = c.Update(keyDown)
	c, _ = c.Update(keyDown)
	if c.Selected != 2 {
		t.Fatalf("expected cursor clamped at 2, got %d", c.Selected)
	}
	c, _ = c.Update(keyEnter)
	if !c.Done() || c.Chosen != 2 {
		t.Errorf("expected option 2 chosen, got %d", c.Chosen)
	}

	c, _ = c.Update(keyUp)
	if c.Selected != 2 {
		t.Error("expected no movement after choosing")
	}
}

func TestChoiceLetterShortcut(t *testing.T) {
	c := NewChoice("Pick", []string{"one", "two"}, 0)
	c, _ = c.Update(key('z'))
	if c.Done() {
		t.Fatal("out-of-range letter should be ignored")
	}
	c, _ = c.Update(key('B'))
	if c.Chosen != 1 {
		t.Errorf("expected B to pick option 1, got %d", c.Chosen)
	}
	if !strings.Contains(c.View(), "B)  two") {
		t.Errorf("expected lettered options in view, got %q", c.View())
	}
}

func TestTextInputNumericFilter(t *testing.T) {
	ti := NewTextInput("hours", true, 6)
	for _, r := range "1a.5.x" {
		ti, _ = ti.Update(key(r))
	}
	if ti.Value() != "1.5" {
		t.Fatalf("expected filtered value 1.5, got %q", ti.Value())
	}
	v, err := ti.FloatValue()
	if err != nil || v != 1.5 {
		t.Errorf("expected 1.5, got %v (%v)", v, err)
	}

	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("expected empty value after reset, got %q", ti.Value())
	}
}

func TestProgressBarWidth(t *testing.T) {
	bar := NewProgressBar("", 0.5, false, 20).View()
	if !strings.Contains(bar, strings.Repeat(" ", 10)) {
		t.Errorf("expected half-filled bar, got %q", bar)
	}
	over := NewProgressBar("x", 3, true, 30).View()
	if !strings.Contains(over, "300%") {
		t.Errorf("expected raw percent label, got %q", over)
	}
}
