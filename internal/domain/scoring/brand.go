package scoring

import "github.com/abdidvp/visualkraft/internal/domain"

// EvaluateBrand checks brand token, glass markup and theme class usage.
// Voice compliance is not analysed and always passes.
func EvaluateBrand(snap domain.MarkupSnapshot, tokens domain.TokenConfig) domain.BrandComplianceResult {
	idx := newClassIndex(snap.HTML)
	r := domain.BrandComplianceResult{
		BrandTokenDetected:        hasProperty(snap.RootProperties, tokens.BrandProperty),
		GlassEffectMarkupDetected: idx.contains(tokens.GlassClass),
		ThemeClassPresent:         hasAnyClass(snap.BodyClasses, tokens.ThemeClasses),
		VoiceCompliant:            true,
	}
	r.Score = flagScore(r.BrandTokenDetected, r.GlassEffectMarkupDetected, r.ThemeClassPresent, r.VoiceCompliant)
	return r
}

// FailedBrand is the sentinel substituted when the probe itself fails.
func FailedBrand(err error) domain.BrandComplianceResult {
	return domain.BrandComplianceResult{Failed: true, Error: err.Error()}
}

func hasAnyClass(classes, wanted []string) bool {
	for _, c := range classes {
		for _, w := range wanted {
			if c == w {
				return true
			}
		}
	}
	return false
}
