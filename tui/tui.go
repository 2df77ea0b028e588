// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen inbox triage, pipeline board and sync status for one workspace
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/models"
)

// Tab is the list currently on screen.
type Tab int

const (
	TabInbox Tab = iota
	TabPipeline
	TabSync
)

var tabNames = []string{"Inbox", "Pipeline", "Sync"}

// Model is the main bubbletea model
type Model struct {
	ctx         context.Context
	svc         *ingest.Service
	workspace   *models.Workspace
	tab         Tab
	selectedRow int

	inbox      []models.InboxItem
	pipeline   []models.PipelineEntry
	syncStates []db.SyncState

	// Last action result shown under the table
	status string
	err    error

	width  int
	height int
}

// NewModel creates a TUI model for workspaceID and loads its data.
func NewModel(ctx context.Context, svc *ingest.Service, workspaceID uuid.UUID) (Model, error) {
	ws, err := svc.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		ctx:       ctx,
		svc:       svc,
		workspace: ws,
		tab:       TabInbox,
		width:     80,
		height:    24,
	}
	m.reload()
	return m, nil
}

// Run starts the full-screen program.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) reload() {
	m.err = nil
	var err error
	switch m.tab {
	case TabInbox:
		m.inbox, err = m.svc.ListInbox(m.ctx, m.workspace.ID, nil)
	case TabPipeline:
		m.pipeline, err = m.svc.ListPipeline(m.ctx, m.workspace.ID)
	case TabSync:
		m.syncStates, err = db.GetAllSyncStates(m.ctx, m.svc.DB())
	}
	if err != nil {
		m.err = err
	}
	if n := m.rowCount(); m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

func (m Model) rowCount() int {
	switch m.tab {
	case TabInbox:
		return len(m.inbox)
	case TabPipeline:
		return len(m.pipeline)
	case TabSync:
		return len(m.syncStates)
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.tab {
	case TabInbox:
		body = m.renderInboxView()
	case TabPipeline:
		body = m.renderPipelineView()
	case TabSync:
		body = m.renderSyncView()
	}

	footer := ""
	if m.err != nil {
		footer = errorStyle.Render("Error: " + m.err.Error())
	} else if m.status != "" {
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.workspace.Name),
		m.renderTabs(),
		"",
		body,
		footer,
	)
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(name))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.selectedRow = 0
		m.status = ""
		m.reload()
		return m, nil
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
		return m, nil
	case "r":
		m.reload()
		return m, nil
	}

	switch m.tab {
	case TabInbox:
		return m.handleInboxKeys(msg)
	case TabPipeline:
		return m.handlePipelineKeys(msg)
	}
	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)
