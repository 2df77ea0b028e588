// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Summarizes a workspace's pipeline, inbox backlog and overdue follow-ups
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/models"
)

// staleAfterDays is how long a pipeline item can go untouched before it needs attention.
const staleAfterDays = 14

type DashboardStats struct {
	WorkspaceName string

	PipelineByStage map[string]int
	TotalContacts   int
	AverageScore    int

	// Unhandled inbox items per classification
	UnhandledInbox map[string]int

	// Needs attention
	DueFollowUps []FollowUp
	StaleItems   []StaleItem
}

type FollowUp struct {
	Name       string
	NextAction string
	Due        time.Time
}

type StaleItem struct {
	Name      string
	Stage     string
	DaysSince int
}

// GenerateDashboardStats gathers the dashboard for a workspace as of now.
func GenerateDashboardStats(ctx context.Context, svc *ingest.Service, workspaceID uuid.UUID, now time.Time) (*DashboardStats, error) {
	ws, err := svc.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		WorkspaceName:   ws.Name,
		PipelineByStage: make(map[string]int),
		UnhandledInbox:  make(map[string]int),
	}
	today := clock.Date(now)

	entries, err := svc.ListPipeline(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pipeline: %w", err)
	}
	for _, e := range entries {
		stats.PipelineByStage[e.Stage]++
		if e.Stage == models.StageClosed {
			continue
		}
		days := int(today.Sub(clock.Date(e.LastTouch)).Hours() / 24)
		if days > staleAfterDays {
			stats.StaleItems = append(stats.StaleItems, StaleItem{Name: e.ContactName, Stage: e.Stage, DaysSince: days})
		}
	}

	contacts, err := svc.ListContacts(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	stats.TotalContacts = len(contacts)
	total := 0
	for _, c := range contacts {
		total += c.CredibilityScore
		if c.NextActionDate != nil && !c.NextActionDate.After(today) {
			stats.DueFollowUps = append(stats.DueFollowUps, FollowUp{Name: c.Name, NextAction: c.NextAction, Due: *c.NextActionDate})
		}
	}
	if len(contacts) > 0 {
		stats.AverageScore = total / len(contacts)
	}

	unhandled := false
	inbox, err := svc.ListInbox(ctx, workspaceID, &unhandled)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inbox: %w", err)
	}
	for _, item := range inbox {
		stats.UnhandledInbox[item.Classification]++
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(stats.WorkspaceName)))
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.PipelineByStage)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  ⭐ average score %d\n\n", stats.TotalContacts, stats.AverageScore))

	out.WriteString("INBOX\n")
	pending := 0
	for _, classification := range models.Classifications {
		if n := stats.UnhandledInbox[classification]; n > 0 {
			out.WriteString(fmt.Sprintf("  %-12s %d unhandled\n", classification, n))
			pending += n
		}
	}
	if pending == 0 {
		out.WriteString("  all caught up\n")
	}
	out.WriteString("\n")

	if len(stats.DueFollowUps) > 0 || len(stats.StaleItems) > 0 {
		out.WriteString("NEEDS ATTENTION\n")

		for _, f := range stats.DueFollowUps {
			out.WriteString(fmt.Sprintf("  ⏰ %s: %s (due %s)\n", f.Name, f.NextAction, f.Due.Format("2006-01-02")))
		}

		if len(stats.StaleItems) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d pipeline items - untouched for %d+ days\n", len(stats.StaleItems), staleAfterDays))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline map[string]int) {
	maxCount := 0
	for _, count := range pipeline {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, stage := range models.Stages {
		count := pipeline[stage]

		// 0-10 blocks
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-15s %s  %2d\n", stage, bar, count))
	}
}
