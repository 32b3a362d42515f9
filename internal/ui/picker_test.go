package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPickerModel_SelectsOnEnter(t *testing.T) {
	m := newPickerModel([]string{"ghz.json", "qv.yaml"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pm := updated.(pickerModel)
	if pm.choice != "ghz.json" {
		t.Errorf("choice = %q, want ghz.json", pm.choice)
	}
	if pm.aborted {
		t.Error("enter should not abort")
	}
}

func TestPickerModel_Aborts(t *testing.T) {
	m := newPickerModel([]string{"ghz.json"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	pm := updated.(pickerModel)
	if !pm.aborted {
		t.Error("ctrl+c should abort")
	}
}

func TestPickConfig_EmptyList(t *testing.T) {
	if _, err := PickConfig(nil); err == nil {
		t.Error("expected error for empty list")
	}
}
