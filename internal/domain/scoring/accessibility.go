package scoring

import "github.com/abdidvp/visualkraft/internal/domain"

// penaltyPerViolation is deducted from 100 for each violated rule.
const penaltyPerViolation = 10

// ScoreAccessibility converts a violation count into a 0..100 score.
func ScoreAccessibility(violations int) int {
	return Clamp(100 - penaltyPerViolation*violations)
}

// ComplianceLevelFor maps a violation count to a conformance bucket.
func ComplianceLevelFor(violations int) domain.ComplianceLevel {
	switch {
	case violations == 0:
		return domain.ComplianceAAA
	case violations < 3:
		return domain.ComplianceAA
	case violations < 6:
		return domain.ComplianceA
	default:
		return domain.ComplianceNonCompliant
	}
}

// EvaluateAccessibility turns a raw audit report into a scored result.
func EvaluateAccessibility(report domain.AuditReport) domain.AccessibilityResult {
	n := len(report.Violations)
	return domain.AccessibilityResult{
		Violations:      report.Violations,
		Passes:          report.Passes,
		Score:           ScoreAccessibility(n),
		ComplianceLevel: ComplianceLevelFor(n),
	}
}

// FailedAccessibility is the sentinel substituted when the probe itself fails.
func FailedAccessibility(err error) domain.AccessibilityResult {
	return domain.AccessibilityResult{
		Score:           0,
		ComplianceLevel: domain.ComplianceNonCompliant,
		Failed:          true,
		Error:           err.Error(),
	}
}
