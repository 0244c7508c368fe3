package scoring

// penaltyPerIssue is deducted from 100 for each quick-check issue.
const penaltyPerIssue = 15

// ScoreQuickCheck converts an issue count into a 0..100 score.
func ScoreQuickCheck(issues int) int {
	return Clamp(100 - penaltyPerIssue*issues)
}
