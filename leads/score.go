// ABOUTME: Rule-based credibility scoring for incoming leads
// ABOUTME: Base score plus source offset, completeness bonuses and trust signals, clamped to 0-100
package leads

const (
	baseScore        = 50
	opportunityBase  = 75
	completenessStep = 5
	signalStep       = 5
	maxScore         = 100
	minScore         = 0
)

// Score computes the initial credibility score for a lead from src.
func Score(src Source, p *LeadPayload) int {
	if p == nil {
		p = &LeadPayload{}
	}

	score := baseScore + src.Offset(p)

	// Data completeness bonus
	for _, field := range []string{p.Phone, p.Market, p.PainPoints, p.Role} {
		if present(field) {
			score += completenessStep
		}
	}

	score += len(p.TrustSignals) * signalStep

	return clamp(score, minScore, maxScore)
}

// OpportunityScore scores a contact auto-created from an opportunity inquiry.
// Opportunities start high; the increments are non-negative so only the ceiling applies.
func OpportunityScore(trustSignals []string) int {
	return min(opportunityBase+len(trustSignals)*signalStep, maxScore)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
