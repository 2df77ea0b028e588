// ABOUTME: Closed set of lead sources and their per-source rules
// ABOUTME: Each source supplies its score offset, tags, signals, next action and activity text
package leads

import (
	"fmt"
	"strings"

	"github.com/harperreed/boxcrm/models"
)

// Wire identifiers accepted in the "source" field.
const (
	SourceReviewWidget    = "reviewsniper"
	SourceDirectSite      = "boxford"
	SourceLoanApplication = "urla-form"
	SourceEmailContact    = "mailboxford"
	SourceClassifier      = "gravitas"
)

const defaultNextAction = "Follow up on inquiry"

// Source holds the rules for one origin of leads. Adding a source means adding a type
// here and a case in ParseSource.
type Source interface {
	Name() string
	// Label is the provenance label stored on the contact.
	Label(p *LeadPayload) string
	Offset(p *LeadPayload) int
	Tags(p *LeadPayload) []string
	Signals(p *LeadPayload) []string
	NextAction(p *LeadPayload) string
	ActivityDescription(p *LeadPayload) string
	ActivityType() string
	// AlwaysEnroll reports whether the lead goes into the pipeline regardless of score.
	AlwaysEnroll(p *LeadPayload) bool
}

var (
	ReviewWidget    Source = reviewWidget{}
	DirectSite      Source = directSite{}
	LoanApplication Source = loanApplication{}
	EmailContact    Source = emailContact{}
	Classifier      Source = classifier{}
)

// ParseSource maps a wire identifier to its Source. Unrecognized identifiers get the
// neutral unknown source rather than an error.
func ParseSource(name string) Source {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SourceReviewWidget:
		return ReviewWidget
	case SourceDirectSite:
		return DirectSite
	case SourceLoanApplication:
		return LoanApplication
	case SourceEmailContact:
		return EmailContact
	case SourceClassifier:
		return Classifier
	}
	return unknownSource{name: name}
}

// base carries the defaults shared by the non-classifier sources.
type base struct{}

func (base) ActivityType() string { return models.ActivityNote }
func (base) AlwaysEnroll(*LeadPayload) bool { return false }
func (base) NextAction(*LeadPayload) string { return defaultNextAction }
func (base) ActivityDescription(*LeadPayload) string { return "New lead inquiry" }

type reviewWidget struct{ base }

func (reviewWidget) Name() string { return SourceReviewWidget }
func (reviewWidget) Label(*LeadPayload) string { return "reviewSNIPER Lead Form" }
func (reviewWidget) Offset(*LeadPayload) int { return 10 }
func (reviewWidget) Tags(*LeadPayload) []string { return []string{"reviewsniper-lead"} }
func (reviewWidget) Signals(*LeadPayload) []string { return []string{"reviewSNIPER inquiry"} }
func (reviewWidget) NextAction(*LeadPayload) string {
	return "Schedule demo of reviewSNIPER features"
}

func (reviewWidget) ActivityDescription(p *LeadPayload) string {
	if present(p.PainPoints) {
		return "Lead from reviewSNIPER inquiry - Pain points: " + p.PainPoints
	}
	return "Lead from reviewSNIPER inquiry"
}

type directSite struct{ base }

func (directSite) Name() string { return SourceDirectSite }
func (directSite) Label(*LeadPayload) string { return "boxfordpartners.com Contact Form" }
func (directSite) Offset(*LeadPayload) int { return 20 }
func (directSite) Tags(*LeadPayload) []string { return []string{"website-inquiry"} }
func (directSite) Signals(*LeadPayload) []string { return []string{"Direct website inquiry"} }
func (directSite) NextAction(*LeadPayload) string { return "Initial discovery call" }

func (directSite) ActivityDescription(p *LeadPayload) string {
	if present(p.PainPoints) {
		return "Contact form submission from boxfordpartners.com - " + p.PainPoints
	}
	return "Contact form submission from boxfordpartners.com"
}

type loanApplication struct{ base }

func (loanApplication) Name() string { return SourceLoanApplication }
func (loanApplication) Label(*LeadPayload) string { return "URLA Loan Application" }
func (loanApplication) Offset(*LeadPayload) int { return 15 }
func (loanApplication) Tags(*LeadPayload) []string { return []string{"mortgage-application"} }
func (loanApplication) NextAction(*LeadPayload) string {
	return "Review loan application and contact borrower"
}

func (loanApplication) Signals(p *LeadPayload) []string {
	signals := []string{"URLA loan application submitted"}
	if present(p.PainPoints) {
		signals = append(signals, "Loan: "+p.PainPoints)
	}
	return signals
}

func (loanApplication) ActivityDescription(p *LeadPayload) string {
	var b strings.Builder
	b.WriteString("URLA loan application submitted")
	if present(p.PainPoints) {
		b.WriteString(" - " + p.PainPoints)
	}
	if present(p.Market) {
		b.WriteString(" (" + p.Market + ")")
	}
	return b.String()
}

type emailContact struct{ base }

func (emailContact) Name() string { return SourceEmailContact }
func (emailContact) Label(*LeadPayload) string { return "mailBOXFORD Email" }
func (emailContact) Offset(*LeadPayload) int { return 15 }
func (emailContact) Tags(*LeadPayload) []string { return nil }
func (emailContact) Signals(*LeadPayload) []string { return nil }

func (emailContact) ActivityDescription(p *LeadPayload) string {
	if present(p.Subject) {
		return "Email inquiry: " + p.Subject
	}
	return "New lead inquiry"
}

type classifier struct{}

func (classifier) Name() string { return SourceClassifier }
func (classifier) ActivityType() string { return models.ActivityGravitas }
func (classifier) Tags(*LeadPayload) []string { return []string{"gravitas-lead"} }

// Signals passes the classifier's own trust signals through after the fixed one.
func (classifier) Signals(p *LeadPayload) []string {
	return append([]string{"Gravitas classified inquiry"}, p.TrustSignals...)
}

func (classifier) Label(p *LeadPayload) string {
	return fmt.Sprintf("Gravitas Index (%s)", orDefault(p.Classification, "inquiry"))
}

func (classifier) Offset(p *LeadPayload) int {
	switch p.Classification {
	case models.ClassificationOpportunity:
		return 25
	case models.ClassificationReputation:
		return 15
	case models.ClassificationRisk:
		return -10
	}
	return 0
}

func (classifier) NextAction(p *LeadPayload) string {
	if present(p.RecommendedAction) {
		return p.RecommendedAction
	}
	switch p.Classification {
	case models.ClassificationOpportunity:
		return "Reach out within 24 hours"
	case models.ClassificationRisk:
		return "Review inquiry details and assess"
	case models.ClassificationReputation:
		return "Engage for testimonial/review"
	}
	return defaultNextAction
}

func (classifier) ActivityDescription(p *LeadPayload) string {
	return fmt.Sprintf("Gravitas classified as %s: %s",
		orDefault(p.Classification, "inquiry"), orDefault(p.Subject, "No subject"))
}

func (classifier) AlwaysEnroll(p *LeadPayload) bool {
	return p.Classification == models.ClassificationOpportunity
}

type unknownSource struct {
	base
	name string
}

func (u unknownSource) Name() string { return u.name }
func (unknownSource) Label(*LeadPayload) string { return "Unknown source" }
func (unknownSource) Offset(*LeadPayload) int { return 0 }
func (unknownSource) Tags(*LeadPayload) []string { return nil }
func (unknownSource) Signals(*LeadPayload) []string {
	return nil
}

func orDefault(s, fallback string) string {
	if present(s) {
		return s
	}
	return fallback
}
