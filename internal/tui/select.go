package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// selectModel is the single-choice list.
type selectModel struct {
	title     string
	options   []string
	cursor    int
	choice    int
	cancelled bool
	keys      keyMap
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{
		title:   title,
		options: options,
		choice:  -1,
		keys:    defaultKeys,
	}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Accept):
		m.choice = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(option))
		} else {
			b.WriteString("  ")
			b.WriteString(option)
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Select prompts for one of options and returns the chosen index.
func Select(title string, options []string) (int, error) {
	final, err := tea.NewProgram(newSelectModel(title, options)).Run()
	if err != nil {
		return 0, fmt.Errorf("failed to run selection prompt: %w", err)
	}

	m := final.(selectModel)
	if m.cancelled || m.choice < 0 {
		return 0, ErrCancelled
	}
	return m.choice, nil
}
