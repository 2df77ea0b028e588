// ABOUTME: Inbound lead and classified-inquiry payloads with boundary validation
// ABOUTME: Rejects missing or malformed fields before anything reaches the store
package leads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/models"
)

// LeadPayload is a lead submitted by one of the external sources.
type LeadPayload struct {
	Source      string `json:"source"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`

	Phone             string   `json:"phone,omitempty"`
	Market            string   `json:"market,omitempty"`
	PainPoints        string   `json:"pain_points,omitempty"`
	Role              string   `json:"role,omitempty"`
	Industry          string   `json:"industry,omitempty"`
	Subject           string   `json:"subject,omitempty"`
	Classification    string   `json:"classification,omitempty"`
	TrustSignals      []string `json:"trust_signals,omitempty"`
	RecommendedAction string   `json:"recommended_action,omitempty"`
}

// ContactInfo identifies the person behind a classified inquiry.
type ContactInfo struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	TrustSignals []string `json:"trust_signals,omitempty"`
}

// Complete reports whether there is enough to create or match a contact.
func (c *ContactInfo) Complete() bool {
	return c != nil && present(c.Name) && present(c.Email)
}

// InquiryPayload is an inquiry already classified by the external service.
type InquiryPayload struct {
	WorkspaceID       string          `json:"workspace_id"`
	From              string          `json:"from"`
	Subject           string          `json:"subject"`
	Preview           string          `json:"preview,omitempty"`
	Classification    string          `json:"classification"`
	RecommendedAction string          `json:"recommended_action,omitempty"`
	Signals           json.RawMessage `json:"signals,omitempty"`
	Rationale         string          `json:"rationale,omitempty"`
	FullText          string          `json:"full_text,omitempty"`
	ContactInfo       *ContactInfo    `json:"contact_info,omitempty"`
}

// LoanUpdate carries loan application details for an existing contact.
type LoanUpdate struct {
	ContactID         string `json:"contact_id"`
	WorkspaceID       string `json:"workspace_id"`
	LoanAmount        string `json:"loan_amount,omitempty"`
	LoanPurpose       string `json:"loan_purpose,omitempty"`
	PropertyAddress   string `json:"property_address,omitempty"`
	PropertyValue     string `json:"property_value,omitempty"`
	ApplicationStatus string `json:"application_status,omitempty"`
}

// FieldError describes a single invalid or missing field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func missing(field string) *FieldError {
	return &FieldError{Field: field, Reason: "is required"}
}

// Validate checks required lead fields and the shape of optional ones.
func (p *LeadPayload) Validate() error {
	if p == nil {
		return missing("payload")
	}
	switch {
	case !present(p.Source):
		return missing("source")
	case !present(p.WorkspaceID):
		return missing("workspace_id")
	case !present(p.Name):
		return missing("name")
	case !present(p.Email):
		return missing("email")
	}
	if _, err := uuid.Parse(p.WorkspaceID); err != nil {
		return &FieldError{Field: "workspace_id", Reason: "must be a UUID"}
	}
	if !ValidEmail(p.Email) {
		return &FieldError{Field: "email", Reason: "must be an email address"}
	}
	if present(p.Classification) && !models.IsValidClassification(p.Classification) {
		return invalidClassification()
	}
	return nil
}

// Validate checks required inquiry fields, the classification and the signals blob.
func (p *InquiryPayload) Validate() error {
	if p == nil {
		return missing("payload")
	}
	switch {
	case !present(p.WorkspaceID):
		return missing("workspace_id")
	case !present(p.From):
		return missing("from")
	case !present(p.Subject):
		return missing("subject")
	case !present(p.Classification):
		return missing("classification")
	}
	if _, err := uuid.Parse(p.WorkspaceID); err != nil {
		return &FieldError{Field: "workspace_id", Reason: "must be a UUID"}
	}
	if !models.IsValidClassification(p.Classification) {
		return invalidClassification()
	}
	if !validSignals(p.Signals) {
		return &FieldError{Field: "signals", Reason: "must be a JSON object"}
	}
	if p.ContactInfo != nil && present(p.ContactInfo.Email) && !ValidEmail(p.ContactInfo.Email) {
		return &FieldError{Field: "contact_info.email", Reason: "must be an email address"}
	}
	return nil
}

// Validate checks the loan update identifies a contact in a workspace.
func (u *LoanUpdate) Validate() error {
	if u == nil {
		return missing("payload")
	}
	if !present(u.ContactID) {
		return missing("contact_id")
	}
	if !present(u.WorkspaceID) {
		return missing("workspace_id")
	}
	if _, err := uuid.Parse(u.ContactID); err != nil {
		return &FieldError{Field: "contact_id", Reason: "must be a UUID"}
	}
	if _, err := uuid.Parse(u.WorkspaceID); err != nil {
		return &FieldError{Field: "workspace_id", Reason: "must be a UUID"}
	}
	return nil
}

// Details renders the loan fields that were supplied, in a fixed order.
func (u *LoanUpdate) Details() []string {
	var details []string
	if present(u.LoanAmount) {
		details = append(details, "Loan: $"+u.LoanAmount)
	}
	if present(u.LoanPurpose) {
		details = append(details, "Purpose: "+u.LoanPurpose)
	}
	if present(u.PropertyAddress) {
		details = append(details, "Property: "+u.PropertyAddress)
	}
	if present(u.PropertyValue) {
		details = append(details, "Value: $"+u.PropertyValue)
	}
	if present(u.ApplicationStatus) {
		details = append(details, "Status: "+u.ApplicationStatus)
	}
	return details
}

func invalidClassification() *FieldError {
	return &FieldError{
		Field:  "classification",
		Reason: "must be one of: " + strings.Join(models.Classifications, ", "),
	}
}

// NormalizeEmail converts email to the lowercase, trimmed form used for dedup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email is a bare address. Display-name and angle-bracket
// forms are rejected so every spelling of a mailbox normalizes to the same key.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address != "" && addr.Address == email
}

func validSignals(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(trimmed, &obj) == nil
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
