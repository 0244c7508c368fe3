package scoring

import "github.com/abdidvp/visualkraft/internal/domain"

// Categories builds the weighted category breakdown of a merged audit.
func Categories(audit PageAudit, cfg domain.HarnessConfig) []domain.CategoryScore {
	return []domain.CategoryScore{
		{Name: domain.CategoryAccessibility, Score: Clamp(audit.Accessibility.Score), Weight: cfg.EffectiveWeight(domain.CategoryAccessibility)},
		{Name: domain.CategoryPerformance, Score: Clamp(audit.Performance.Score), Weight: cfg.EffectiveWeight(domain.CategoryPerformance)},
		{Name: domain.CategoryDesign, Score: Clamp(audit.Design.Score), Weight: cfg.EffectiveWeight(domain.CategoryDesign)},
		{Name: domain.CategoryBrand, Score: Clamp(audit.Brand.Score), Weight: cfg.EffectiveWeight(domain.CategoryBrand)},
	}
}

// Summarize attaches the merged audit, category breakdown, overall score and
// verdict to result.
func Summarize(result *domain.ValidationResult, audit PageAudit, cfg domain.HarnessConfig) {
	result.Accessibility = audit.Accessibility
	result.Performance = audit.Performance
	result.DesignCompliance = audit.Design
	result.BrandCompliance = audit.Brand
	result.Categories = Categories(audit, cfg)
	result.OverallScore = Clamp(domain.ComputeOverallScore(result.Categories))
	result.OverallVerdict = domain.VerdictFor(result.OverallScore)
}
