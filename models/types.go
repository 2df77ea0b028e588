// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Workspace, Contact, Activity, PipelineItem and InboxItem structs
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Workspace types.
const (
	WorkspaceRealEstate = "Real Estate"
	WorkspaceConsulting = "Consulting"
	WorkspaceProduct    = "Product"
	WorkspaceOther      = "Other"
)

// WorkspaceTypes lists the accepted workspace types in display order.
var WorkspaceTypes = []string{WorkspaceRealEstate, WorkspaceConsulting, WorkspaceProduct, WorkspaceOther}

// WorkspaceColors is the palette used when a workspace is created without a color.
var WorkspaceColors = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

func IsValidWorkspaceType(t string) bool {
	for _, v := range WorkspaceTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Contact struct {
	ID               uuid.UUID  `json:"id"`
	WorkspaceID      uuid.UUID  `json:"workspace_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Tags             []string   `json:"tags"`
	Status           string     `json:"status"`
	Source           string     `json:"source"`
	TrustSignals     []string   `json:"trust_signals"`
	NextAction       string     `json:"next_action"`
	NextActionDate   *time.Time `json:"next_action_date,omitempty"`
	LastActivity     time.Time  `json:"last_activity"`
	CredibilityScore int        `json:"credibility_score"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Contact status constants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusLead     = "lead"
)

func IsValidContactStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusLead
}

// ContactWithActivities is a contact along with its timeline, newest first.
type ContactWithActivities struct {
	Contact
	Activities []Activity `json:"activities"`
}

type Activity struct {
	ID          uuid.UUID `json:"id"`
	ContactID   uuid.UUID `json:"contact_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Activity type constants. ActivityGravitas marks activity that originated from the
// external classification service.
const (
	ActivityCall     = "call"
	ActivityEmail    = "email"
	ActivityText     = "text"
	ActivityNote     = "note"
	ActivityGravitas = "gravitas"
)

func IsValidActivityType(t string) bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityText, ActivityNote, ActivityGravitas:
		return true
	}
	return false
}

type PipelineItem struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	ContactID   uuid.UUID `json:"contact_id"`
	Stage       string    `json:"stage"`
	LastTouch   time.Time `json:"last_touch"`
	NextAction  string    `json:"next_action"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PipelineEntry is a pipeline item joined with the display fields of its contact.
type PipelineEntry struct {
	PipelineItem
	ContactName      string `json:"contact_name"`
	CredibilityScore int    `json:"credibility_score"`
}

// Pipeline stages, in board order. Any stage may move to any other.
const (
	StageNew           = "new"
	StageActive        = "active"
	StageHot           = "hot"
	StageUnderContract = "under_contract"
	StageClosed        = "closed"
)

var Stages = []string{StageNew, StageActive, StageHot, StageUnderContract, StageClosed}

func IsValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

type InboxItem struct {
	ID                uuid.UUID       `json:"id"`
	WorkspaceID       uuid.UUID       `json:"workspace_id"`
	FromAddress       string          `json:"from_address"`
	Subject           string          `json:"subject"`
	Preview           string          `json:"preview"`
	Classification    string          `json:"classification"`
	RecommendedAction string          `json:"recommended_action"`
	Handled           bool            `json:"handled"`
	Date              time.Time       `json:"date"`
	Signals           json.RawMessage `json:"signals,omitempty"`
	Rationale         *string         `json:"rationale,omitempty"`
	FullText          *string         `json:"full_text,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Classification constants, assigned by the external classifier.
const (
	ClassificationNoise       = "noise"
	ClassificationRisk        = "risk"
	ClassificationOpportunity = "opportunity"
	ClassificationReputation  = "reputation"
)

var Classifications = []string{ClassificationNoise, ClassificationRisk, ClassificationOpportunity, ClassificationReputation}

func IsValidClassification(c string) bool {
	for _, v := range Classifications {
		if v == c {
			return true
		}
	}
	return false
}

// Sync status constants.
const (
	SyncStatusIdle    = "idle"
	SyncStatusSyncing = "syncing"
	SyncStatusError   = "error"
)
