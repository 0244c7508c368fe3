package scoring

import (
	"strings"

	"github.com/abdidvp/visualkraft/internal/domain"
)

// PageAudit bundles the four probe results for one page.
type PageAudit struct {
	URL           string                        `json:"url"`
	Accessibility domain.AccessibilityResult    `json:"accessibility"`
	Performance   domain.PerformanceResult      `json:"performance"`
	Design        domain.DesignComplianceResult `json:"design"`
	Brand         domain.BrandComplianceResult  `json:"brand"`
}

// Merges are pessimistic: scores keep the minimum, flags are ANDed and
// timings keep the maximum. Merging never raises a score.

// MergeAccessibility folds next into acc. Violation and pass lists are
// concatenated. The compliance level only moves while acc is still
// non-compliant, so the first page that clears the floor sets it.
func MergeAccessibility(acc, next domain.AccessibilityResult) domain.AccessibilityResult {
	out := domain.AccessibilityResult{
		Violations:      concatRules(acc.Violations, next.Violations),
		Passes:          concatRules(acc.Passes, next.Passes),
		Score:           min(acc.Score, next.Score),
		ComplianceLevel: acc.ComplianceLevel,
		Failed:          acc.Failed || next.Failed,
		Error:           joinErrors(acc.Error, next.Error),
	}
	if out.ComplianceLevel == domain.ComplianceNonCompliant || out.ComplianceLevel == "" {
		out.ComplianceLevel = next.ComplianceLevel
	}
	return out
}

// MergePerformance keeps the worst (largest) of each timing.
func MergePerformance(acc, next domain.PerformanceResult) domain.PerformanceResult {
	return domain.PerformanceResult{
		LargestContentfulPaintMs: max(acc.LargestContentfulPaintMs, next.LargestContentfulPaintMs),
		FirstInputDelayMs:        max(acc.FirstInputDelayMs, next.FirstInputDelayMs),
		CumulativeLayoutShift:    max(acc.CumulativeLayoutShift, next.CumulativeLayoutShift),
		Score:                    min(acc.Score, next.Score),
		Estimated:                unionStrings(acc.Estimated, next.Estimated),
		Failed:                   acc.Failed || next.Failed,
		Error:                    joinErrors(acc.Error, next.Error),
	}
}

func MergeDesign(acc, next domain.DesignComplianceResult) domain.DesignComplianceResult {
	return domain.DesignComplianceResult{
		TokenUsageDetected:      acc.TokenUsageDetected && next.TokenUsageDetected,
		ComponentMarkupDetected: acc.ComponentMarkupDetected && next.ComponentMarkupDetected,
		ElevationMarkupDetected: acc.ElevationMarkupDetected && next.ElevationMarkupDetected,
		TypographyTokenDetected: acc.TypographyTokenDetected && next.TypographyTokenDetected,
		Score:                   min(acc.Score, next.Score),
		Failed:                  acc.Failed || next.Failed,
		Error:                   joinErrors(acc.Error, next.Error),
	}
}

func MergeBrand(acc, next domain.BrandComplianceResult) domain.BrandComplianceResult {
	return domain.BrandComplianceResult{
		BrandTokenDetected:        acc.BrandTokenDetected && next.BrandTokenDetected,
		GlassEffectMarkupDetected: acc.GlassEffectMarkupDetected && next.GlassEffectMarkupDetected,
		ThemeClassPresent:         acc.ThemeClassPresent && next.ThemeClassPresent,
		VoiceCompliant:            acc.VoiceCompliant && next.VoiceCompliant,
		Score:                     min(acc.Score, next.Score),
		Failed:                    acc.Failed || next.Failed,
		Error:                     joinErrors(acc.Error, next.Error),
	}
}

// Accumulator is the running total of page audits within one run.
// It is not safe for concurrent use.
type Accumulator struct {
	merged PageAudit
	pages  int
}

// Add folds one page into the running total. The first page is taken as is.
func (a *Accumulator) Add(p PageAudit) {
	if a.pages == 0 {
		a.merged = p
		a.merged.URL = ""
		a.pages++
		return
	}
	a.merged.Accessibility = MergeAccessibility(a.merged.Accessibility, p.Accessibility)
	a.merged.Performance = MergePerformance(a.merged.Performance, p.Performance)
	a.merged.Design = MergeDesign(a.merged.Design, p.Design)
	a.merged.Brand = MergeBrand(a.merged.Brand, p.Brand)
	a.pages++
}

// Pages returns how many page audits have been added.
func (a *Accumulator) Pages() int { return a.pages }

// Result returns the merged audit so far.
func (a *Accumulator) Result() PageAudit { return a.merged }

func concatRules(a, b []domain.AuditRule) []domain.AuditRule {
	out := make([]domain.AuditRule, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func unionStrings(a, b []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func joinErrors(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "" || a == b:
		return a
	default:
		return strings.Join([]string{a, b}, "; ")
	}
}
