package scoring

import "github.com/abdidvp/visualkraft/internal/domain"

// EvaluateDesign infers design-token and component conventions from a page snapshot.
func EvaluateDesign(snap domain.MarkupSnapshot, tokens domain.TokenConfig) domain.DesignComplianceResult {
	idx := newClassIndex(snap.HTML)
	r := domain.DesignComplianceResult{
		TokenUsageDetected:      hasProperty(snap.RootProperties, tokens.DesignProperty),
		ComponentMarkupDetected: idx.contains(tokens.ComponentClass),
		ElevationMarkupDetected: idx.contains(tokens.ElevationClass),
		TypographyTokenDetected: hasProperty(snap.RootProperties, tokens.TypographyProperty) ||
			idx.contains(tokens.TypographyClass),
	}
	r.Score = flagScore(r.TokenUsageDetected, r.ComponentMarkupDetected, r.ElevationMarkupDetected, r.TypographyTokenDetected)
	return r
}

// FailedDesign is the sentinel substituted when the probe itself fails.
func FailedDesign(err error) domain.DesignComplianceResult {
	return domain.DesignComplianceResult{Failed: true, Error: err.Error()}
}
