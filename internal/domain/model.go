package domain

import (
	"math"
	"time"
)

// ValidationResult is the report root of a full visual validation run.
type ValidationResult struct {
	RunID            string                 `json:"run_id"`
	BaseURL          string                 `json:"base_url"`
	StartedAt        time.Time              `json:"started_at"`
	Duration         time.Duration          `json:"duration_ns"`
	CommitHash       string                 `json:"commit_hash,omitempty"`
	OverallVerdict   Verdict                `json:"overall_verdict"`
	OverallScore     int                    `json:"overall_score"`
	Pages            []string               `json:"pages"`
	Categories       []CategoryScore        `json:"categories"`
	Screenshots      []ScreenshotResult     `json:"screenshots"`
	Themes           []ThemeReport          `json:"themes,omitempty"`
	Failures         []CaptureFailure       `json:"failures,omitempty"`
	Accessibility    AccessibilityResult    `json:"accessibility"`
	Performance      PerformanceResult      `json:"performance"`
	DesignCompliance DesignComplianceResult `json:"design_compliance"`
	BrandCompliance  BrandComplianceResult  `json:"brand_compliance"`
}

// Verdict is the pass/warning/fail classification of an overall score.
type Verdict string

const (
	VerdictPass    Verdict = "pass"
	VerdictWarning Verdict = "warning"
	VerdictFail    Verdict = "fail"
)

func VerdictFor(score int) Verdict {
	switch {
	case score >= 85:
		return VerdictPass
	case score >= 70:
		return VerdictWarning
	default:
		return VerdictFail
	}
}

// CategoryScore is one weighted slice of the overall score.
type CategoryScore struct {
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
}

const (
	CategoryAccessibility = "accessibility"
	CategoryPerformance   = "performance"
	CategoryDesign        = "design_compliance"
	CategoryBrand         = "brand_compliance"
)

// ValidCategories enumerates all scoring category names in report order.
var ValidCategories = []string{
	CategoryAccessibility, CategoryPerformance, CategoryDesign, CategoryBrand,
}

// DefaultWeights returns the category weights used when config does not override them.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		CategoryAccessibility: 0.25,
		CategoryPerformance:   0.20,
		CategoryDesign:        0.25,
		CategoryBrand:         0.30,
	}
}

// ComputeOverallScore returns the weighted sum of category scores rounded to
// the nearest integer. Weights are normalised so a partial weight set still
// yields a 0..100 score.
func ComputeOverallScore(categories []CategoryScore) int {
	var totalWeighted, totalWeight float64
	for _, c := range categories {
		totalWeighted += float64(c.Score) * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(totalWeighted / totalWeight))
}

// ScreenshotResult records one (url, viewport) capture.
type ScreenshotResult struct {
	FilePath  string    `json:"file_path"`
	Viewport  Viewport  `json:"viewport"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	Errors    []string  `json:"errors"`
	Warnings  []string  `json:"warnings"`
}

// WarningHorizontalScroll is attached to mobile captures whose document is wider than the viewport.
const WarningHorizontalScroll = "Horizontal scroll detected on mobile viewport"

// CaptureFailure is a matrix cell that produced no result.
type CaptureFailure struct {
	URL      string `json:"url"`
	Viewport string `json:"viewport,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Error    string `json:"error"`
}

// ThemeReport is the outcome of sweeping every theme over one page.
type ThemeReport struct {
	URL          string            `json:"url"`
	Compatible   bool              `json:"compatible"`
	FailedThemes []string          `json:"failed_themes"`
	Screenshots  map[string]string `json:"screenshots"`
}

// ComplianceLevel is the WCAG conformance bucket inferred from violation count.
type ComplianceLevel string

const (
	ComplianceAAA          ComplianceLevel = "AAA"
	ComplianceAA           ComplianceLevel = "AA"
	ComplianceA            ComplianceLevel = "A"
	ComplianceNonCompliant ComplianceLevel = "non-compliant"
)

// AuditRule is a single axe rule outcome, either a violation or a pass.
type AuditRule struct {
	ID          string      `json:"id"`
	Impact      string      `json:"impact,omitempty"`
	Description string      `json:"description,omitempty"`
	HelpURL     string      `json:"help_url,omitempty"`
	Nodes       []AuditNode `json:"nodes,omitempty"`
}

// AuditNode is one DOM node affected by a rule.
type AuditNode struct {
	Target []string `json:"target"`
	HTML   string   `json:"html,omitempty"`
}

// AuditReport is the raw in-page accessibility audit output.
type AuditReport struct {
	Violations []AuditRule `json:"violations"`
	Passes     []AuditRule `json:"passes"`
}

type AccessibilityResult struct {
	Violations      []AuditRule     `json:"violations"`
	Passes          []AuditRule     `json:"passes"`
	Score           int             `json:"score"`
	ComplianceLevel ComplianceLevel `json:"compliance_level"`
	Failed          bool            `json:"failed,omitempty"`
	Error           string          `json:"error,omitempty"`
}

type PerformanceResult struct {
	LargestContentfulPaintMs float64  `json:"largest_contentful_paint_ms"`
	FirstInputDelayMs        float64  `json:"first_input_delay_ms"`
	CumulativeLayoutShift    float64  `json:"cumulative_layout_shift"`
	Score                    int      `json:"score"`
	Estimated                []string `json:"estimated,omitempty"`
	Failed                   bool     `json:"failed,omitempty"`
	Error                    string   `json:"error,omitempty"`
}

// Metric names reported in PerformanceResult.Estimated.
const (
	MetricLCP = "lcp"
	MetricFID = "fid"
	MetricCLS = "cls"
)

// VitalsSample is what the page reports about its own timing. Negative
// values mean the browser produced no entry for that metric.
type VitalsSample struct {
	NavigationMs float64 `json:"navigation_ms"`
	LCPMs        float64 `json:"lcp_ms"`
	FIDMs        float64 `json:"fid_ms"`
	CLS          float64 `json:"cls"`
}

type DesignComplianceResult struct {
	TokenUsageDetected      bool   `json:"token_usage_detected"`
	ComponentMarkupDetected bool   `json:"component_markup_detected"`
	ElevationMarkupDetected bool   `json:"elevation_markup_detected"`
	TypographyTokenDetected bool   `json:"typography_token_detected"`
	Score                   int    `json:"score"`
	Failed                  bool   `json:"failed,omitempty"`
	Error                   string `json:"error,omitempty"`
}

type BrandComplianceResult struct {
	BrandTokenDetected        bool `json:"brand_token_detected"`
	GlassEffectMarkupDetected bool `json:"glass_effect_markup_detected"`
	ThemeClassPresent         bool `json:"theme_class_present"`
	// VoiceCompliant is always true: no content or tone analysis is performed.
	VoiceCompliant bool   `json:"voice_compliant"`
	Score          int    `json:"score"`
	Failed         bool   `json:"failed,omitempty"`
	Error          string `json:"error,omitempty"`
}

// MarkupSnapshot is the static view of a rendered page the token probes work on.
type MarkupSnapshot struct {
	HTML           string            `json:"html"`
	RootProperties map[string]string `json:"root_properties"`
	BodyClasses    []string          `json:"body_classes"`
}

// QuickCheckResult is the outcome of the single-page fast check.
type QuickCheckResult struct {
	URL         string   `json:"url"`
	Passed      bool     `json:"passed"`
	Issues      []string `json:"issues"`
	Screenshots []string `json:"screenshots"`
	Score       int      `json:"score"`
}

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp  string   `json:"timestamp"`
	RunID      string   `json:"run_id"`
	CommitHash string   `json:"commit_hash,omitempty"`
	BaseURL    string   `json:"base_url"`
	Pages      []string `json:"pages"`
	Overall    int      `json:"overall"`
	Verdict    Verdict  `json:"verdict"`
}
