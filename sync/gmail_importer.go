// ABOUTME: Gmail importer for inbound email leads
// ABOUTME: Ingests each new human-sent message as an email-contact lead, once per message
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/logger"
	"github.com/harperreed/boxcrm/models"
)

const gmailService = "gmail"

// ImportSummary counts what happened to each message the query returned.
type ImportSummary struct {
	Seen        int
	Imported    int
	NewContacts int
	// Already imported on an earlier run
	Duplicates int
	// Automated senders and addresses that fail validation
	Skipped int
	Failed  int
}

type Importer struct {
	svc         *ingest.Service
	source      MessageSource
	workspaceID uuid.UUID
	query       string
}

func NewImporter(svc *ingest.Service, source MessageSource, workspaceID uuid.UUID, query string) *Importer {
	return &Importer{svc: svc, source: source, workspaceID: workspaceID, query: query}
}

// Import pulls every message matching the query and ingests the new ones. Sync state moves
// to syncing for the run and ends idle, or error with the failure message.
func (im *Importer) Import(ctx context.Context) (*ImportSummary, error) {
	database := im.svc.DB()
	log := logger.FromContext(ctx).With("service", gmailService, "workspace_id", im.workspaceID)

	if _, err := im.svc.GetWorkspace(ctx, im.workspaceID); err != nil {
		return nil, err
	}

	if err := db.UpdateSyncStatus(ctx, database, gmailService, models.SyncStatusSyncing, nil); err != nil {
		return nil, fmt.Errorf("failed to update sync status: %w", err)
	}

	ids, err := im.source.ListMessageIDs(ctx, im.query)
	if err != nil {
		errMsg := err.Error()
		_ = db.UpdateSyncStatus(ctx, database, gmailService, models.SyncStatusError, &errMsg)
		return nil, err
	}

	summary := &ImportSummary{}
	for _, id := range ids {
		summary.Seen++
		if err := im.importMessage(ctx, id, summary); err != nil {
			summary.Failed++
			log.Warn("failed to import message", "message_id", id, "error", err)
		}
	}

	if len(ids) > 0 {
		// Gmail lists newest first
		if err := db.UpdateSyncToken(ctx, database, gmailService, ids[0]); err != nil {
			return summary, fmt.Errorf("failed to update sync token: %w", err)
		}
	}
	if err := db.UpdateSyncStatus(ctx, database, gmailService, models.SyncStatusIdle, nil); err != nil {
		return summary, fmt.Errorf("failed to update sync status: %w", err)
	}

	log.Info("gmail import finished",
		"seen", summary.Seen, "imported", summary.Imported, "new_contacts", summary.NewContacts,
		"duplicates", summary.Duplicates, "skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

func (im *Importer) importMessage(ctx context.Context, id string, summary *ImportSummary) error {
	database := im.svc.DB()

	exists, err := db.CheckSyncLogExists(ctx, database, gmailService, id)
	if err != nil {
		return err
	}
	if exists {
		summary.Duplicates++
		return nil
	}

	message, err := im.source.GetMessage(ctx, id)
	if err != nil {
		return err
	}

	headers := parseHeaders(message.Payload)
	from := headers["From"]
	if isAutomatedSender(from) {
		summary.Skipped++
		return nil
	}

	name, email, _ := ExtractEmailAddress(from)
	if name == "" {
		name = nameFromEmail(email)
	}

	metadata, err := json.Marshal(map[string]string{
		"subject":   headers["Subject"],
		"thread_id": message.ThreadId,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sync metadata: %w", err)
	}

	// the sync log row commits in the same transaction as the lead
	result, err := im.svc.IngestImportedLead(ctx, &leads.LeadPayload{
		Source:      leads.SourceEmailContact,
		WorkspaceID: im.workspaceID.String(),
		Name:        name,
		Email:       email,
		Subject:     headers["Subject"],
	}, ingest.ImportRecord{Service: gmailService, SourceID: id, Metadata: string(metadata)})
	var ve *ingest.ValidationError
	if errors.As(err, &ve) {
		summary.Skipped++
		return nil
	}
	var ce *ingest.ConflictError
	if errors.As(err, &ce) {
		summary.Duplicates++
		return nil
	}
	if err != nil {
		return err
	}

	summary.Imported++
	if result.Created {
		summary.NewContacts++
	}
	return nil
}
