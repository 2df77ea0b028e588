package web

import (
	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/leads"
)

func leadPayload(workspaceID uuid.UUID, email string) *leads.LeadPayload {
	return &leads.LeadPayload{
		Source:      leads.SourceDirectSite,
		WorkspaceID: workspaceID.String(),
		Name:        "Lead " + email,
		Email:       email,
	}
}
