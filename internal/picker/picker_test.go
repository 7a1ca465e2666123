package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var names = []string{"audio/sound_loading", "core/basic_window", "core/input_keys", "shapes/basic_shapes"}

func typeText(m *model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFilterAndChoose(t *testing.T) {
	m := newModel("showcase", names)
	typeText(m, "basic")
	if len(m.shown) != 2 {
		t.Fatalf("shown = %v, want 2 matches", m.shown)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.chosen != "shapes/basic_shapes" {
		t.Fatalf("chosen = %q, want shapes/basic_shapes", m.chosen)
	}
}

func TestSelectionClampsToFilter(t *testing.T) {
	m := newModel("showcase", names)
	for range names {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.selected != len(names)-1 {
		t.Fatalf("selected = %d, want %d", m.selected, len(names)-1)
	}
	typeText(m, "audio")
	if m.selected != 0 || len(m.shown) != 1 {
		t.Fatalf("selected %d of %v, want 0 of 1", m.selected, m.shown)
	}
}

func TestNoMatchEnterDoesNothing(t *testing.T) {
	m := newModel("showcase", names)
	typeText(m, "zzz")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil || m.chosen != "" {
		t.Fatalf("enter with no match chose %q", m.chosen)
	}
	if v := m.View(); !strings.Contains(v, "no demo matches") {
		t.Fatalf("View() = %q", v)
	}
}

func TestEscapeCancels(t *testing.T) {
	m := newModel("showcase", names)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.canceled {
		t.Fatalf("canceled = false after esc")
	}
}
