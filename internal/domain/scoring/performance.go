package scoring

import "github.com/abdidvp/visualkraft/internal/domain"

// Fallbacks used when the browser records no entry for a metric.
const (
	EstimatedFIDMs = 50.0
	EstimatedCLS   = 0.1
)

// threshold is one rung of the performance deduction ladder. The first
// rung whose limit the value exceeds applies; rungs are ordered worst first.
type threshold struct {
	limit   float64
	penalty int
}

var (
	lcpLadder = []threshold{{2500, 30}, {1500, 15}}
	fidLadder = []threshold{{100, 20}, {50, 10}}
	clsLadder = []threshold{{0.1, 20}, {0.05, 10}}
)

func ladderPenalty(value float64, ladder []threshold) int {
	for _, t := range ladder {
		if value > t.limit {
			return t.penalty
		}
	}
	return 0
}

// ScorePerformance applies the deduction ladder to the three vitals.
func ScorePerformance(lcpMs, fidMs, cls float64) int {
	score := 100
	score -= ladderPenalty(lcpMs, lcpLadder)
	score -= ladderPenalty(fidMs, fidLadder)
	score -= ladderPenalty(cls, clsLadder)
	return Clamp(score)
}

// EvaluatePerformance resolves missing measurements to labelled estimates and
// scores the result. Navigation timing stands in for a missing LCP entry.
func EvaluatePerformance(s domain.VitalsSample) domain.PerformanceResult {
	var r domain.PerformanceResult

	r.LargestContentfulPaintMs = s.LCPMs
	if s.LCPMs < 0 {
		r.LargestContentfulPaintMs = max(0, s.NavigationMs)
		r.Estimated = append(r.Estimated, domain.MetricLCP)
	}
	r.FirstInputDelayMs = s.FIDMs
	if s.FIDMs < 0 {
		r.FirstInputDelayMs = EstimatedFIDMs
		r.Estimated = append(r.Estimated, domain.MetricFID)
	}
	r.CumulativeLayoutShift = s.CLS
	if s.CLS < 0 {
		r.CumulativeLayoutShift = EstimatedCLS
		r.Estimated = append(r.Estimated, domain.MetricCLS)
	}

	r.Score = ScorePerformance(r.LargestContentfulPaintMs, r.FirstInputDelayMs, r.CumulativeLayoutShift)
	return r
}

// FailedPerformance is the sentinel substituted when the probe itself fails.
func FailedPerformance(err error) domain.PerformanceResult {
	return domain.PerformanceResult{Failed: true, Error: err.Error()}
}
