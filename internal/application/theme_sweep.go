package application

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/domain"
)

// ValidateThemeCompatibility applies every configured theme to url in order,
// screenshots each one and verifies the theme class reached the body. A theme
// that fails is recorded and the sweep moves on. The shared browser context
// must already exist; use CheckThemes to run a sweep on its own.
func (s *ValidationService) ValidateThemeCompatibility(ctx context.Context, url string) (domain.ThemeReport, error) {
	if !s.session.HasContext() {
		return domain.ThemeReport{}, domain.ErrContextNotInitialized
	}

	report := domain.ThemeReport{
		URL:          url,
		FailedThemes: []string{},
		Screenshots:  make(map[string]string, len(s.cfg.Themes)),
	}
	log := s.logger.With(zap.String("url", url))

	page, err := s.session.NewPage(ctx)
	if err != nil {
		if s.isFatal(ctx, err) {
			return report, fmt.Errorf("opening page: %w", err)
		}
		log.Warn("theme sweep could not open page", zap.Error(err))
		return s.failAllThemes(report), nil
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.Debug("closing page", zap.Error(cerr))
		}
	}()

	if err := s.loadForSweep(ctx, page, url); err != nil {
		if s.isFatal(ctx, err) {
			return report, err
		}
		log.Warn("theme sweep could not load page", zap.Error(err))
		return s.failAllThemes(report), nil
	}

	// Each iteration strips every known theme class before adding its own,
	// so this loop must stay sequential on a single page.
	strip := s.themeClasses()
	for _, theme := range s.cfg.Themes {
		path, err := s.applyTheme(ctx, page, url, theme, strip)
		if path != "" {
			report.Screenshots[theme] = path
		}
		if err != nil {
			if s.isFatal(ctx, err) {
				return report, err
			}
			log.Warn("theme failed", zap.String("theme", theme), zap.Error(err))
			report.FailedThemes = append(report.FailedThemes, theme)
		}
	}

	report.Compatible = len(report.FailedThemes) == 0
	return report, nil
}

// CheckThemes runs a theme sweep with its own browser session.
func (s *ValidationService) CheckThemes(ctx context.Context, url string) (domain.ThemeReport, error) {
	if err := s.artifacts.Prepare(); err != nil {
		return domain.ThemeReport{}, fmt.Errorf("preparing output: %w", err)
	}
	defer s.teardown()
	if err := s.startSession(ctx); err != nil {
		return domain.ThemeReport{}, err
	}
	return s.ValidateThemeCompatibility(ctx, url)
}

func (s *ValidationService) loadForSweep(ctx context.Context, page domain.Page, url string) error {
	ctx, cancel := s.withOperationTimeout(ctx)
	defer cancel()

	vp := s.defaultViewport()
	if err := page.SetViewport(ctx, vp); err != nil {
		return fmt.Errorf("setting viewport %s: %w", vp.Name, err)
	}
	target := resolveURL(s.cfg.BaseURL, url)
	if err := page.Navigate(ctx, target); err != nil {
		return fmt.Errorf("navigating to %s: %w", target, err)
	}
	return nil
}

// applyTheme switches the page to theme and captures it. The returned path is
// set whenever the screenshot was written, even if verification then fails.
func (s *ValidationService) applyTheme(ctx context.Context, page domain.Page, url, theme string, strip []string) (string, error) {
	ctx, cancel := s.withOperationTimeout(ctx)
	defer cancel()

	if err := page.ApplyTheme(ctx, theme, strip); err != nil {
		return "", fmt.Errorf("applying theme: %w", err)
	}
	if err := sleepCtx(ctx, s.cfg.ThemeSettleDelay()); err != nil {
		return "", fmt.Errorf("waiting for transition: %w", err)
	}

	data, err := page.Screenshot(ctx, true)
	if err != nil {
		return "", fmt.Errorf("taking screenshot: %w", err)
	}
	path, err := s.artifacts.Save(screenshotName(url, "theme-"+theme, s.now()), data)
	if err != nil {
		return "", fmt.Errorf("saving screenshot: %w", err)
	}

	classes, err := page.BodyClasses(ctx)
	if err != nil {
		return path, fmt.Errorf("reading body classes: %w", err)
	}
	if !slices.Contains(classes, theme) {
		return path, fmt.Errorf("theme class %q not present on body", theme)
	}
	return path, nil
}

// themeClasses is every class a theme iteration removes from the body: the
// configured sweep plus the theme classes a site may ship on its own.
func (s *ValidationService) themeClasses() []string {
	classes := slices.Clone(s.cfg.Themes)
	for _, c := range s.cfg.Tokens.ThemeClasses {
		if !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	return classes
}

func (s *ValidationService) failAllThemes(report domain.ThemeReport) domain.ThemeReport {
	report.FailedThemes = append(report.FailedThemes, s.cfg.Themes...)
	report.Compatible = false
	return report
}
