package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderInboxView() string {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Date", Width: 10},
		{Title: "Class", Width: 12},
		{Title: "From", Width: 24},
		{Title: "Subject", Width: 30},
	}

	var rows []table.Row
	for _, item := range m.inbox {
		mark := "•"
		if item.Handled {
			mark = "✓"
		}
		rows = append(rows, table.Row{
			mark,
			item.Date.Format("2006-01-02"),
			item.Classification,
			item.FromAddress,
			item.Subject,
		})
	}

	var s strings.Builder
	s.WriteString(m.newTable(columns, rows).View())
	s.WriteString("\n")

	if m.selectedRow < len(m.inbox) {
		if action := m.inbox[m.selectedRow].RecommendedAction; action != "" {
			s.WriteString("\nRecommended: " + action + "\n")
		}
	}

	s.WriteString(helpStyle.Render(strings.Join([]string{
		"↑/↓: Navigate",
		"Space: Toggle handled",
		"Tab: Switch tabs",
		"r: Reload",
		"q: Quit",
	}, " • ")))
	return s.String()
}

func (m Model) handleInboxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "h":
		if m.selectedRow >= len(m.inbox) {
			return m, nil
		}
		item := m.inbox[m.selectedRow]
		updated, err := m.svc.SetInboxHandled(m.ctx, item.ID, !item.Handled)
		if err != nil {
			m.err = err
			return m, nil
		}
		if updated.Handled {
			m.status = "Marked handled: " + updated.Subject
		} else {
			m.status = "Marked unhandled: " + updated.Subject
		}
		m.reload()
	}
	return m, nil
}

func (m Model) newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t
}
