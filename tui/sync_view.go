// ABOUTME: TUI view for Gmail import status
// ABOUTME: Lists sync_state rows with their last run and any error
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/boxcrm/models"
)

var (
	syncServiceStyle = lipgloss.NewStyle().
				Bold(true).
				Width(12)

	syncIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	syncSyncingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)

	syncErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	syncMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)

func (m Model) renderSyncView() string {
	var s strings.Builder

	if len(m.syncStates) == 0 {
		s.WriteString(syncMessageStyle.Render("No imports yet. Run 'boxcrm sync gmail' to import email leads."))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Tab: Switch tabs • q: Quit"))
		return s.String()
	}

	for i, state := range m.syncStates {
		var row strings.Builder
		if i == m.selectedRow {
			row.WriteString("▶ ")
		} else {
			row.WriteString("  ")
		}
		row.WriteString(syncServiceStyle.Render(state.Service))

		switch state.Status {
		case models.SyncStatusSyncing:
			row.WriteString(syncSyncingStyle.Render("  ⟳ Syncing..."))
		case models.SyncStatusError:
			row.WriteString(syncErrorStyle.Render("  ✗ Error"))
			if state.ErrorMessage != nil {
				row.WriteString(syncErrorStyle.Render(": " + *state.ErrorMessage))
			}
		default:
			row.WriteString(syncIdleStyle.Render("  ✓ Idle"))
		}

		if state.LastSyncTime != nil {
			row.WriteString(syncMessageStyle.Render("  last run " + state.LastSyncTime.Format("2006-01-02 15:04")))
		} else {
			row.WriteString(syncMessageStyle.Render("  never completed"))
		}

		s.WriteString(row.String())
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("Tab: Switch tabs • r: Reload • q: Quit"))
	return s.String()
}
