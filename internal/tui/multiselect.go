package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// multiSelectModel is the checkbox list.
type multiSelectModel struct {
	title     string
	options   []string
	checked   []bool
	cursor    int
	done      bool
	cancelled bool
	keys      keyMap
}

func newMultiSelectModel(title string, options []string, checked []bool) multiSelectModel {
	state := make([]bool, len(options))
	copy(state, checked)
	return multiSelectModel{
		title:   title,
		options: options,
		checked: state,
		keys:    defaultKeys,
	}
}

func (m multiSelectModel) Init() tea.Cmd { return nil }

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.checked) > 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case key.Matches(keyMsg, m.keys.Accept):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m multiSelectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, option := range m.options {
		mark := "[ ]"
		if m.checked[i] {
			mark = checkedStyle.Render("[x]")
		}

		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(mark)
			b.WriteString(" ")
			b.WriteString(selectedStyle.Render(option))
		} else {
			b.WriteString("  ")
			b.WriteString(mark)
			b.WriteString(" ")
			b.WriteString(option)
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • space toggle • enter confirm • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// MultiSelect prompts for any number of options; checked marks the rows
// selected up front. It returns the indexes of the chosen options in
// ascending order, and the result may be empty.
func MultiSelect(title string, options []string, checked []bool) ([]int, error) {
	final, err := tea.NewProgram(newMultiSelectModel(title, options, checked)).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run selection prompt: %w", err)
	}

	m := final.(multiSelectModel)
	if m.cancelled || !m.done {
		return nil, ErrCancelled
	}

	var picked []int
	for i, on := range m.checked {
		if on {
			picked = append(picked, i)
		}
	}
	return picked, nil
}
