package scoring_test

import (
	"errors"
	"testing"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/abdidvp/visualkraft/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
)

func TestScoreAccessibility(t *testing.T) {
	tests := []struct {
		violations int
		score      int
	}{
		{0, 100}, {2, 80}, {7, 30}, {10, 0}, {15, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, scoring.ScoreAccessibility(tt.violations), "%d violations", tt.violations)
	}
}

func TestComplianceLevelFor(t *testing.T) {
	tests := []struct {
		violations int
		level      domain.ComplianceLevel
	}{
		{0, domain.ComplianceAAA},
		{1, domain.ComplianceAA}, {2, domain.ComplianceAA},
		{3, domain.ComplianceA}, {5, domain.ComplianceA},
		{6, domain.ComplianceNonCompliant}, {40, domain.ComplianceNonCompliant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, scoring.ComplianceLevelFor(tt.violations), "%d violations", tt.violations)
	}
}

func TestEvaluateAccessibility(t *testing.T) {
	report := domain.AuditReport{
		Violations: []domain.AuditRule{{ID: "image-alt", Impact: "critical"}, {ID: "label", Impact: "serious"}},
		Passes:     []domain.AuditRule{{ID: "document-title"}},
	}
	r := scoring.EvaluateAccessibility(report)
	assert.Equal(t, 80, r.Score)
	assert.Equal(t, domain.ComplianceAA, r.ComplianceLevel)
	assert.Len(t, r.Violations, 2)
	assert.Len(t, r.Passes, 1)
	assert.False(t, r.Failed)
}

func TestFailedAccessibility(t *testing.T) {
	r := scoring.FailedAccessibility(errors.New("axe timed out"))
	assert.True(t, r.Failed)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, domain.ComplianceNonCompliant, r.ComplianceLevel)
	assert.Equal(t, "axe timed out", r.Error)
}
