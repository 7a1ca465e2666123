// Package picker is the terminal demo chooser shown when no demo is named
// on the command line.
package picker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCanceled is returned when the user leaves without choosing.
var ErrCanceled = errors.New("picker: canceled")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Interactive reports whether both ends of the session are terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

const pageSize = 15

type model struct {
	title    string
	names    []string
	shown    []string
	filter   textinput.Model
	selected int
	chosen   string
	canceled bool
}

func newModel(title string, names []string) *model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	m := &model{title: title, names: names, filter: ti}
	m.refilter()
	return m
}

func (m *model) refilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.shown = m.shown[:0]
	for _, n := range m.names {
		if q == "" || strings.Contains(strings.ToLower(n), q) {
			m.shown = append(m.shown, n)
		}
	}
	if m.selected >= len(m.shown) {
		m.selected = max(len(m.shown)-1, 0)
	}
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.shown)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if len(m.shown) > 0 {
				m.chosen = m.shown[m.selected]
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	start := 0
	if m.selected >= pageSize {
		start = m.selected - pageSize + 1
	}
	end := min(start+pageSize, len(m.shown))
	for i := start; i < end; i++ {
		cat, name, _ := strings.Cut(m.shown[i], "/")
		line := fmt.Sprintf("%s/%s", categoryStyle.Render(cat), name)
		if i == m.selected {
			line = selectedStyle.Render("> " + m.shown[i])
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(m.shown) == 0 {
		b.WriteString(helpStyle.Render("  no demo matches"))
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d  type to filter  up/down select  enter run  esc quit", len(m.shown), len(m.names))))
	b.WriteByte('\n')
	return b.String()
}

// Run shows the picker and returns the chosen name.
func Run(title string, names []string, in io.Reader, out io.Writer) (string, error) {
	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	final, err := tea.NewProgram(newModel(title, names), opts...).Run()
	if err != nil {
		return "", err
	}
	m := final.(*model)
	if m.canceled || m.chosen == "" {
		return "", ErrCanceled
	}
	return m.chosen, nil
}
