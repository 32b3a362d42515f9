// Package ui provides the interactive configuration picker shown when the
// CLI is started without a config filename.
package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A")).
			Bold(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5c6773"))
)

// ErrAborted is returned when the user quits the picker without choosing.
var ErrAborted = errors.New("ui: selection aborted")

type configItem string

func (c configItem) Title() string       { return string(c) }
func (c configItem) Description() string { return "" }
func (c configItem) FilterValue() string { return string(c) }

type pickerModel struct {
	list    list.Model
	choice  string
	aborted bool
}

func newPickerModel(names []string) pickerModel {
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = configItem(name)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, 48, len(names)+8)
	l.Title = "Which configuration file would you like to use?"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(configItem); ok {
				m.choice = string(item)
			}
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// PickConfig shows a list of config filenames and returns the selection.
func PickConfig(names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("ui: no configuration files to pick from")
	}

	final, err := tea.NewProgram(newPickerModel(names)).Run()
	if err != nil {
		return "", fmt.Errorf("ui: picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted || m.choice == "" {
		return "", ErrAborted
	}
	return m.choice, nil
}
