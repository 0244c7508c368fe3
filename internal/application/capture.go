package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/domain"
)

// CaptureAndAnalyze loads url at viewport vp, waits for it to settle, writes a
// full-page screenshot and collects console errors. Mobile captures are also
// checked for horizontal overflow.
func (s *ValidationService) CaptureAndAnalyze(ctx context.Context, url string, vp domain.Viewport) (domain.ScreenshotResult, error) {
	if !domain.IsKnownViewport(s.cfg.Viewports, vp) {
		return domain.ScreenshotResult{}, fmt.Errorf("viewport %q is not configured", vp.Name)
	}

	taken := s.now()
	result := domain.ScreenshotResult{
		Viewport:  vp,
		URL:       url,
		Timestamp: taken,
		Errors:    []string{},
		Warnings:  []string{},
	}

	err := s.withPage(ctx, url, vp, func(ctx context.Context, page domain.Page) error {
		if err := sleepCtx(ctx, s.cfg.SettleDelay()); err != nil {
			return fmt.Errorf("waiting for page to settle: %w", err)
		}

		data, err := page.Screenshot(ctx, true)
		if err != nil {
			return fmt.Errorf("taking screenshot: %w", err)
		}
		path, err := s.artifacts.Save(screenshotName(url, vp.Name, taken), data)
		if err != nil {
			return fmt.Errorf("saving screenshot: %w", err)
		}
		result.FilePath = path

		if vp.IsMobile() {
			width, err := page.ScrollWidth(ctx)
			switch {
			case err != nil:
				s.logger.Warn("overflow check failed", zap.String("url", url), zap.String("viewport", vp.Name), zap.Error(err))
				result.Warnings = append(result.Warnings, fmt.Sprintf("Overflow check failed: %v", err))
			case width > vp.Width:
				result.Warnings = append(result.Warnings, domain.WarningHorizontalScroll)
			}
		}

		result.Errors = append(result.Errors, page.ConsoleErrors()...)
		return nil
	})
	if err != nil {
		return domain.ScreenshotResult{}, err
	}

	s.logger.Debug("captured",
		zap.String("url", url),
		zap.String("viewport", vp.Name),
		zap.String("path", result.FilePath),
		zap.Int("console_errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}
