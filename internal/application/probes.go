package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/abdidvp/visualkraft/internal/domain/scoring"
)

// auditPage runs the four probes for url one after another, each on its own
// page. A failing probe is replaced by its sentinel result; only fatal errors
// are returned.
func (s *ValidationService) auditPage(ctx context.Context, url string) (scoring.PageAudit, error) {
	audit := scoring.PageAudit{URL: url}
	log := s.logger.With(zap.String("url", url))

	a11y, err := s.ProbeAccessibility(ctx, url, "")
	if err != nil {
		if s.isFatal(ctx, err) {
			return audit, err
		}
		log.Warn("accessibility probe failed", zap.Error(err))
		a11y = scoring.FailedAccessibility(err)
	}
	audit.Accessibility = a11y

	perf, err := s.ProbePerformance(ctx, url)
	if err != nil {
		if s.isFatal(ctx, err) {
			return audit, err
		}
		log.Warn("performance probe failed", zap.Error(err))
		perf = scoring.FailedPerformance(err)
	}
	audit.Performance = perf

	design, err := s.ProbeDesignTokens(ctx, url)
	if err != nil {
		if s.isFatal(ctx, err) {
			return audit, err
		}
		log.Warn("design token probe failed", zap.Error(err))
		design = scoring.FailedDesign(err)
	}
	audit.Design = design

	brand, err := s.ProbeBrandTokens(ctx, url)
	if err != nil {
		if s.isFatal(ctx, err) {
			return audit, err
		}
		log.Warn("brand token probe failed", zap.Error(err))
		brand = scoring.FailedBrand(err)
	}
	audit.Brand = brand

	log.Debug("probes finished",
		zap.Int("accessibility", audit.Accessibility.Score),
		zap.Int("performance", audit.Performance.Score),
		zap.Int("design", audit.Design.Score),
		zap.Int("brand", audit.Brand.Score))

	return audit, nil
}

// ProbeAccessibility injects the audit script into url and scores its violations.
func (s *ValidationService) ProbeAccessibility(ctx context.Context, url, selector string) (domain.AccessibilityResult, error) {
	var result domain.AccessibilityResult
	err := s.withPage(ctx, url, s.defaultViewport(), func(ctx context.Context, page domain.Page) error {
		report, err := page.RunAccessibilityAudit(ctx, s.cfg.AxeScriptURL, selector)
		if err != nil {
			return fmt.Errorf("running accessibility audit: %w", err)
		}
		result = scoring.EvaluateAccessibility(report)
		return nil
	})
	return result, err
}

// ProbePerformance reads the page's Web Vitals and scores them.
func (s *ValidationService) ProbePerformance(ctx context.Context, url string) (domain.PerformanceResult, error) {
	var result domain.PerformanceResult
	err := s.withPage(ctx, url, s.defaultViewport(), func(ctx context.Context, page domain.Page) error {
		sample, err := page.CollectVitals(ctx)
		if err != nil {
			return fmt.Errorf("collecting vitals: %w", err)
		}
		result = scoring.EvaluatePerformance(sample)
		return nil
	})
	return result, err
}

// ProbeDesignTokens checks url for design-token and component conventions.
func (s *ValidationService) ProbeDesignTokens(ctx context.Context, url string) (domain.DesignComplianceResult, error) {
	var result domain.DesignComplianceResult
	err := s.withSnapshot(ctx, url, func(snap domain.MarkupSnapshot) {
		result = scoring.EvaluateDesign(snap, s.cfg.Tokens)
	})
	return result, err
}

// ProbeBrandTokens checks url for brand token, glass markup and theme class usage.
func (s *ValidationService) ProbeBrandTokens(ctx context.Context, url string) (domain.BrandComplianceResult, error) {
	var result domain.BrandComplianceResult
	err := s.withSnapshot(ctx, url, func(snap domain.MarkupSnapshot) {
		result = scoring.EvaluateBrand(snap, s.cfg.Tokens)
	})
	return result, err
}

func (s *ValidationService) withSnapshot(ctx context.Context, url string, fn func(domain.MarkupSnapshot)) error {
	return s.withPage(ctx, url, s.defaultViewport(), func(ctx context.Context, page domain.Page) error {
		snap, err := page.Snapshot(ctx, s.cfg.Tokens.Properties())
		if err != nil {
			return fmt.Errorf("snapshotting markup: %w", err)
		}
		fn(snap)
		return nil
	})
}
