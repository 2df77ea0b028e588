package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/boxcrm/models"
)

func (m Model) renderPipelineView() string {
	columns := []table.Column{
		{Title: "Stage", Width: 15},
		{Title: "Contact", Width: 24},
		{Title: "Score", Width: 6},
		{Title: "Last Touch", Width: 10},
		{Title: "Next Action", Width: 30},
	}

	var rows []table.Row
	for _, e := range m.pipeline {
		rows = append(rows, table.Row{
			e.Stage,
			e.ContactName,
			fmt.Sprintf("%d", e.CredibilityScore),
			e.LastTouch.Format("2006-01-02"),
			e.NextAction,
		})
	}

	var s strings.Builder
	s.WriteString(m.newTable(columns, rows).View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(strings.Join([]string{
		"↑/↓: Navigate",
		"←/→: Move stage",
		"Tab: Switch tabs",
		"r: Reload",
		"q: Quit",
	}, " • ")))
	return s.String()
}

func (m Model) handlePipelineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var step int
	switch msg.String() {
	case "right", "l":
		step = 1
	case "left":
		step = -1
	default:
		return m, nil
	}
	if m.selectedRow >= len(m.pipeline) {
		return m, nil
	}

	entry := m.pipeline[m.selectedRow]
	target, ok := adjacentStage(entry.Stage, step)
	if !ok {
		return m, nil
	}

	if _, err := m.svc.MoveStage(m.ctx, entry.ID, target); err != nil {
		m.err = err
		return m, nil
	}
	m.status = fmt.Sprintf("Moved %s to %s", entry.ContactName, target)
	m.reload()

	// Keep the cursor on the moved item after the board re-sorts.
	for i, e := range m.pipeline {
		if e.ID == entry.ID {
			m.selectedRow = i
			break
		}
	}
	return m, nil
}

// adjacentStage returns the stage step places away from stage in board order.
func adjacentStage(stage string, step int) (string, bool) {
	i := slices.Index(models.Stages, stage)
	if i < 0 {
		return "", false
	}
	j := i + step
	if j < 0 || j >= len(models.Stages) {
		return "", false
	}
	return models.Stages[j], true
}
