// ABOUTME: Derives tags, trust signals, next action and activity text for a lead
// ABOUTME: Pure functions that combine per-source rules with payload-derived values
package leads

// BuildTags returns the source tag followed by role, industry and classification.
func BuildTags(src Source, p *LeadPayload) []string {
	tags := append([]string{}, src.Tags(p)...)
	for _, v := range []string{p.Role, p.Industry, p.Classification} {
		if present(v) {
			tags = append(tags, v)
		}
	}
	return tags
}

// BuildTrustSignals returns the source signals followed by the generic phone and market
// signals. Only the classifier source carries the payload's own trust signals through.
func BuildTrustSignals(src Source, p *LeadPayload) []string {
	signals := append([]string{}, src.Signals(p)...)

	if present(p.Phone) {
		signals = append(signals, "Phone provided")
	}
	if present(p.Market) {
		signals = append(signals, "Market: "+p.Market)
	}
	return signals
}

func BuildNextAction(src Source, p *LeadPayload) string {
	return src.NextAction(p)
}

func BuildInitialActivity(src Source, p *LeadPayload) string {
	return src.ActivityDescription(p)
}

func FormatSource(src Source, p *LeadPayload) string {
	return src.Label(p)
}

// Assessment bundles everything derived from a lead before it is stored.
type Assessment struct {
	Source          Source
	Score           int
	Tags            []string
	TrustSignals    []string
	NextAction      string
	SourceLabel     string
	ActivityType    string
	InitialActivity string
	EnterPipeline   bool
}

// PipelineThreshold is the score at which a lead is enrolled in the pipeline.
const PipelineThreshold = 70

// Assess runs the scorer and every builder for p.
func Assess(p *LeadPayload) Assessment {
	src := ParseSource(p.Source)
	score := Score(src, p)
	return Assessment{
		Source:          src,
		Score:           score,
		Tags:            BuildTags(src, p),
		TrustSignals:    BuildTrustSignals(src, p),
		NextAction:      BuildNextAction(src, p),
		SourceLabel:     FormatSource(src, p),
		ActivityType:    src.ActivityType(),
		InitialActivity: BuildInitialActivity(src, p),
		EnterPipeline:   score >= PipelineThreshold || src.AlwaysEnroll(p),
	}
}
