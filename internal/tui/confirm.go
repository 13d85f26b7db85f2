package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is the yes/no question.
type confirmModel struct {
	question  string
	def       bool
	answer    bool
	answered  bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.answer = true
		m.answered = true
		return m, tea.Quit
	case "n", "N":
		m.answer = false
		m.answered = true
		return m, tea.Quit
	case "enter":
		m.answer = m.def
		m.answered = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	hint := "[y/N]"
	if m.def {
		hint = "[Y/n]"
	}
	return titleStyle.Render(m.question) + " " + helpStyle.Render(hint) + " "
}

// Confirm asks a yes/no question; enter accepts the default.
func Confirm(question string, def bool) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question, def: def}).Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation prompt: %w", err)
	}

	m := final.(confirmModel)
	if m.cancelled || !m.answered {
		return false, ErrCancelled
	}
	return m.answer, nil
}
