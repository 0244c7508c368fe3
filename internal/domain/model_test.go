package domain_test

import (
	"testing"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		score   int
		verdict domain.Verdict
	}{
		{100, domain.VerdictPass}, {85, domain.VerdictPass},
		{84, domain.VerdictWarning}, {70, domain.VerdictWarning},
		{69, domain.VerdictFail}, {0, domain.VerdictFail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.verdict, domain.VerdictFor(tt.score), "score %d", tt.score)
	}
}

func TestComputeOverallScore(t *testing.T) {
	categories := []domain.CategoryScore{
		{Name: domain.CategoryAccessibility, Score: 80, Weight: 0.25},
		{Name: domain.CategoryPerformance, Score: 70, Weight: 0.20},
		{Name: domain.CategoryDesign, Score: 50, Weight: 0.25},
		{Name: domain.CategoryBrand, Score: 75, Weight: 0.30},
	}
	// 20 + 14 + 12.5 + 22.5 = 69
	assert.Equal(t, 69, domain.ComputeOverallScore(categories))
}

func TestComputeOverallScore_Rounds(t *testing.T) {
	categories := []domain.CategoryScore{
		{Name: domain.CategoryAccessibility, Score: 75, Weight: 0.25},
		{Name: domain.CategoryPerformance, Score: 100, Weight: 0.20},
		{Name: domain.CategoryDesign, Score: 75, Weight: 0.25},
		{Name: domain.CategoryBrand, Score: 100, Weight: 0.30},
	}
	// 18.75 + 20 + 18.75 + 30 = 87.5
	assert.Equal(t, 88, domain.ComputeOverallScore(categories))
}

func TestComputeOverallScore_NormalisesPartialWeights(t *testing.T) {
	categories := []domain.CategoryScore{
		{Name: domain.CategoryAccessibility, Score: 60, Weight: 0.5},
		{Name: domain.CategoryBrand, Score: 100, Weight: 0.5},
	}
	assert.Equal(t, 80, domain.ComputeOverallScore(categories))
}

func TestComputeOverallScore_ZeroWeights(t *testing.T) {
	assert.Equal(t, 0, domain.ComputeOverallScore([]domain.CategoryScore{{Name: "x", Score: 90}}))
	assert.Equal(t, 0, domain.ComputeOverallScore(nil))
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range domain.DefaultWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.0001)
}

func TestViewport_IsMobile(t *testing.T) {
	for _, v := range domain.DefaultViewports() {
		assert.Equal(t, v.DeviceClass == domain.DeviceMobile, v.IsMobile(), v.Name)
	}
}

func TestIsKnownViewport(t *testing.T) {
	set := domain.DefaultViewports()
	assert.True(t, domain.IsKnownViewport(set, set[3]))

	resized := set[3]
	resized.Width = 400
	assert.False(t, domain.IsKnownViewport(set, resized))
	assert.False(t, domain.IsKnownViewport(set, domain.Viewport{Name: "watch"}))
}
