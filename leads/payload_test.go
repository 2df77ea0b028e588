package leads

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkspace = "6f1c2b1e-9a55-4c2e-8d0a-2b8f5a1e7c10"

func validLead() *LeadPayload {
	return &LeadPayload{
		Source:      SourceDirectSite,
		WorkspaceID: testWorkspace,
		Name:        "Dana Whit",
		Email:       "dana@example.com",
	}
}

func TestLeadPayloadValidate(t *testing.T) {
	require.NoError(t, validLead().Validate())

	tests := []struct {
		field  string
		mutate func(p *LeadPayload)
	}{
		{"source", func(p *LeadPayload) { p.Source = "" }},
		{"workspace_id", func(p *LeadPayload) { p.WorkspaceID = " " }},
		{"name", func(p *LeadPayload) { p.Name = "" }},
		{"email", func(p *LeadPayload) { p.Email = "" }},
		{"email", func(p *LeadPayload) { p.Email = "not-an-email" }},
		{"email", func(p *LeadPayload) { p.Email = "Bob <bob@example.com>" }},
		{"email", func(p *LeadPayload) { p.Email = "<bob@example.com>" }},
		{"workspace_id", func(p *LeadPayload) { p.WorkspaceID = "ws-1" }},
		{"classification", func(p *LeadPayload) { p.Classification = "hot" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := validLead()
			tt.mutate(p)

			err := p.Validate()
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected FieldError, got %v", err)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestInquiryPayloadValidate(t *testing.T) {
	valid := func() *InquiryPayload {
		return &InquiryPayload{
			WorkspaceID:    testWorkspace,
			From:           "buyer@example.com",
			Subject:        "Looking to buy",
			Classification: "opportunity",
		}
	}
	require.NoError(t, valid().Validate())

	p := valid()
	p.Signals = json.RawMessage(`{"intent":"purchase","urgency":"high"}`)
	require.NoError(t, p.Validate())

	p.Signals = json.RawMessage(`null`)
	require.NoError(t, p.Validate())

	tests := []struct {
		field  string
		mutate func(p *InquiryPayload)
	}{
		{"workspace_id", func(p *InquiryPayload) { p.WorkspaceID = "" }},
		{"from", func(p *InquiryPayload) { p.From = "" }},
		{"subject", func(p *InquiryPayload) { p.Subject = "" }},
		{"classification", func(p *InquiryPayload) { p.Classification = "" }},
		{"classification", func(p *InquiryPayload) { p.Classification = "urgent" }},
		{"signals", func(p *InquiryPayload) { p.Signals = json.RawMessage(`["a","b"]`) }},
		{"contact_info.email", func(p *InquiryPayload) {
			p.ContactInfo = &ContactInfo{Name: "X", Email: "bogus"}
		}},
		{"contact_info.email", func(p *InquiryPayload) {
			p.ContactInfo = &ContactInfo{Name: "X", Email: "X <x@example.com>"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := valid()
			tt.mutate(p)

			var fe *FieldError
			require.True(t, errors.As(p.Validate(), &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestContactInfoComplete(t *testing.T) {
	var nilInfo *ContactInfo
	assert.False(t, nilInfo.Complete())
	assert.False(t, (&ContactInfo{Name: "A"}).Complete())
	assert.False(t, (&ContactInfo{Email: "a@b.co"}).Complete())
	assert.True(t, (&ContactInfo{Name: "A", Email: "a@b.co"}).Complete())
}

func TestLoanUpdateDetails(t *testing.T) {
	u := &LoanUpdate{
		LoanAmount:        "450000",
		LoanPurpose:       "purchase",
		PropertyValue:     "520000",
		ApplicationStatus: "submitted",
	}
	assert.Equal(t, []string{"Loan: $450000", "Purpose: purchase", "Value: $520000", "Status: submitted"}, u.Details())
	assert.Empty(t, (&LoanUpdate{}).Details())
}

func TestLoanUpdateValidate(t *testing.T) {
	u := &LoanUpdate{ContactID: testWorkspace, WorkspaceID: testWorkspace}
	require.NoError(t, u.Validate())

	var fe *FieldError
	require.True(t, errors.As((&LoanUpdate{WorkspaceID: testWorkspace}).Validate(), &fe))
	assert.Equal(t, "contact_id", fe.Field)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dana@example.com", NormalizeEmail("  Dana@Example.COM "))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("bob@example.com"))
	assert.True(t, ValidEmail("  Bob@Example.com "))
	assert.False(t, ValidEmail("Bob <bob@example.com>"))
	assert.False(t, ValidEmail("<bob@example.com>"))
	assert.False(t, ValidEmail("bob@example.com, sue@example.com"))
	assert.False(t, ValidEmail("bob"))
}
