package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/abdidvp/visualkraft/internal/domain/scoring"
)

// QuickVisualCheck is the single-page fast path: one screenshot, a guarded
// accessibility audit, console errors and a token heuristic. When selector is
// set it must match at least one element and the audit is scoped to it; a
// selector that matches nothing is one issue and the audit covers the whole
// document instead. Results do not feed the run aggregator.
func (s *ValidationService) QuickVisualCheck(ctx context.Context, url, selector string) (*domain.QuickCheckResult, error) {
	if err := s.artifacts.Prepare(); err != nil {
		return nil, fmt.Errorf("preparing output: %w", err)
	}
	defer s.teardown()
	if err := s.startSession(ctx); err != nil {
		return nil, err
	}

	started := s.now()
	result := &domain.QuickCheckResult{
		URL:         url,
		Issues:      []string{},
		Screenshots: []string{},
	}
	vp := s.defaultViewport()

	err := s.withPage(ctx, url, vp, func(ctx context.Context, page domain.Page) error {
		if err := sleepCtx(ctx, s.cfg.SettleDelay()); err != nil {
			return fmt.Errorf("waiting for page to settle: %w", err)
		}

		data, err := page.Screenshot(ctx, true)
		if err != nil {
			return fmt.Errorf("taking screenshot: %w", err)
		}
		path, err := s.artifacts.Save(screenshotName(url, "quick-"+vp.Name, s.now()), data)
		if err != nil {
			return fmt.Errorf("saving screenshot: %w", err)
		}
		result.Screenshots = append(result.Screenshots, path)

		snap, snapErr := page.Snapshot(ctx, s.cfg.Tokens.Properties())

		scope := selector
		if selector != "" && snapErr == nil {
			if n, err := scoring.SelectorMatches(snap.HTML, selector); err != nil || n == 0 {
				result.Issues = append(result.Issues, fmt.Sprintf("Component selector %q matched no elements", selector))
				scope = ""
			}
		}

		report, err := page.RunAccessibilityAudit(ctx, s.cfg.AxeScriptURL, scope)
		switch {
		case err != nil:
			result.Issues = append(result.Issues, fmt.Sprintf("Accessibility audit failed: %v", err))
		case len(report.Violations) > 0:
			result.Issues = append(result.Issues, fmt.Sprintf("%d accessibility violations found", len(report.Violations)))
		}

		if errs := page.ConsoleErrors(); len(errs) > 0 {
			result.Issues = append(result.Issues, fmt.Sprintf("%d console errors detected", len(errs)))
		}

		if snapErr != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("Token check failed: %v", snapErr))
			return nil
		}
		if !scoring.HasAnyProperty(snap.RootProperties, s.cfg.Tokens.DesignProperty, s.cfg.Tokens.BrandProperty) {
			result.Issues = append(result.Issues, "No design system CSS variables detected")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("quick check %s: %w", url, err)
	}

	result.Score = scoring.ScoreQuickCheck(len(result.Issues))
	result.Passed = len(result.Issues) == 0

	s.logger.Info("quick check finished",
		zap.String("url", url),
		zap.Int("score", result.Score),
		zap.Int("issues", len(result.Issues)),
		zap.Duration("elapsed", s.now().Sub(started)))

	return result, nil
}
