package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel is the single-line editor.
type inputModel struct {
	title     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(title, initial string) inputModel {
	ti := textinput.New()
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Prompt = "> "
	ti.Focus()
	return inputModel{title: title, input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter accept • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Input prompts for a line of text pre-filled with initial. The result is
// trimmed and may be empty when the user clears the field.
func Input(title, initial string) (string, error) {
	final, err := tea.NewProgram(newInputModel(title, initial)).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run input prompt: %w", err)
	}

	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return strings.TrimSpace(m.input.Value()), nil
}
