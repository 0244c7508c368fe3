package scoring_test

import (
	"errors"
	"testing"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/abdidvp/visualkraft/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
)

func TestScorePerformance(t *testing.T) {
	tests := []struct {
		name     string
		lcp, fid float64
		cls      float64
		score    int
	}{
		{"all good", 1200, 10, 0.01, 100},
		{"lcp at boundary", 1500, 10, 0.01, 100},
		{"lcp needs improvement", 1800, 10, 0.01, 85},
		{"lcp poor", 3000, 10, 0.01, 70},
		{"fid poor", 1000, 150, 0.01, 80},
		{"fid needs improvement", 1000, 75, 0.01, 90},
		{"cls poor", 1000, 10, 0.3, 80},
		{"cls needs improvement", 1000, 10, 0.08, 90},
		{"everything poor", 4000, 300, 0.5, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, scoring.ScorePerformance(tt.lcp, tt.fid, tt.cls))
		})
	}
}

func TestEvaluatePerformance_Measured(t *testing.T) {
	r := scoring.EvaluatePerformance(domain.VitalsSample{NavigationMs: 900, LCPMs: 1100, FIDMs: 12, CLS: 0})
	assert.Equal(t, 1100.0, r.LargestContentfulPaintMs)
	assert.Equal(t, 12.0, r.FirstInputDelayMs)
	assert.Equal(t, 0.0, r.CumulativeLayoutShift)
	assert.Empty(t, r.Estimated)
	assert.Equal(t, 100, r.Score)
}

func TestEvaluatePerformance_FallsBackToEstimates(t *testing.T) {
	r := scoring.EvaluatePerformance(domain.VitalsSample{NavigationMs: 3000, LCPMs: -1, FIDMs: -1, CLS: -1})
	assert.Equal(t, 3000.0, r.LargestContentfulPaintMs, "navigation timing stands in for LCP")
	assert.Equal(t, scoring.EstimatedFIDMs, r.FirstInputDelayMs)
	assert.Equal(t, scoring.EstimatedCLS, r.CumulativeLayoutShift)
	assert.Equal(t, []string{domain.MetricLCP, domain.MetricFID, domain.MetricCLS}, r.Estimated)
	// LCP 3000 (-30), FID 50 (0), CLS 0.1 (-10)
	assert.Equal(t, 60, r.Score)
}

func TestEvaluatePerformance_MissingNavigation(t *testing.T) {
	r := scoring.EvaluatePerformance(domain.VitalsSample{NavigationMs: -1, LCPMs: -1, FIDMs: 0, CLS: 0})
	assert.Equal(t, 0.0, r.LargestContentfulPaintMs)
	assert.Equal(t, []string{domain.MetricLCP}, r.Estimated)
}

func TestFailedPerformance(t *testing.T) {
	r := scoring.FailedPerformance(errors.New("eval failed"))
	assert.True(t, r.Failed)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, "eval failed", r.Error)
}
