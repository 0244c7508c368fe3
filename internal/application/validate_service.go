package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/abdidvp/visualkraft/internal/domain/scoring"
)

// ValidationService orchestrates the visual validation pipeline:
// prepare output → launch browser → per page (captures → theme sweep → probes) → merge → score.
type ValidationService struct {
	session   domain.BrowserSession
	artifacts domain.ArtifactStore
	cfg       domain.HarnessConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewValidationService(
	session domain.BrowserSession,
	artifacts domain.ArtifactStore,
	cfg domain.HarnessConfig,
	logger *zap.Logger,
) *ValidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationService{
		session:   session,
		artifacts: artifacts,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// pageOutcome is everything one page contributes to a run.
type pageOutcome struct {
	screenshots []domain.ScreenshotResult
	themes      domain.ThemeReport
	failures    []domain.CaptureFailure
	audit       scoring.PageAudit
}

// RunVisualValidation sweeps every page across all viewports and themes, runs
// the audit probes, and merges the results into one scored report. The
// browser is torn down on every exit path.
func (s *ValidationService) RunVisualValidation(ctx context.Context, urls []string) (*domain.ValidationResult, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no pages to validate")
	}

	// 0. Output must be writable before any browser work starts
	if err := s.artifacts.Prepare(); err != nil {
		return nil, fmt.Errorf("preparing output: %w", err)
	}

	if timeout := s.cfg.RunTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := s.now()
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))

	// 1. Acquire the shared browser and context
	defer s.teardown()
	if err := s.startSession(ctx); err != nil {
		return nil, err
	}

	log.Info("visual validation started",
		zap.Int("pages", len(urls)),
		zap.Int("viewports", len(s.cfg.Viewports)),
		zap.Int("themes", len(s.cfg.Themes)),
		zap.Int("concurrency", s.cfg.Concurrency))

	// 2. Pages are independent; work within a page stays sequential
	outcomes := make([]pageOutcome, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, u := range urls {
		g.Go(func() error {
			out, err := s.validatePage(gctx, u)
			if err != nil {
				return fmt.Errorf("validating %s: %w", u, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("visual validation aborted", zap.Error(err))
		return nil, err
	}

	// 3. Fold pages in input order so the merge is deterministic
	result := &domain.ValidationResult{
		RunID:       runID,
		BaseURL:     s.cfg.BaseURL,
		StartedAt:   started,
		Pages:       append([]string(nil), urls...),
		Screenshots: []domain.ScreenshotResult{},
	}
	var acc scoring.Accumulator
	for _, out := range outcomes {
		result.Screenshots = append(result.Screenshots, out.screenshots...)
		result.Themes = append(result.Themes, out.themes)
		result.Failures = append(result.Failures, out.failures...)
		acc.Add(out.audit)
	}

	// 4. Score
	scoring.Summarize(result, acc.Result(), s.cfg)
	result.Duration = s.now().Sub(started)

	log.Info("visual validation finished",
		zap.Int("pages", acc.Pages()),
		zap.Int("score", result.OverallScore),
		zap.String("verdict", string(result.OverallVerdict)),
		zap.Int("screenshots", len(result.Screenshots)),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// validatePage runs the full matrix for one page. Only fatal errors are returned;
// per-capture and per-probe failures are recorded and the page continues.
func (s *ValidationService) validatePage(ctx context.Context, url string) (pageOutcome, error) {
	out := pageOutcome{}
	log := s.logger.With(zap.String("url", url))

	for _, vp := range s.cfg.Viewports {
		shot, err := s.CaptureAndAnalyze(ctx, url, vp)
		if err != nil {
			if s.isFatal(ctx, err) {
				return out, err
			}
			log.Warn("capture failed", zap.String("viewport", vp.Name), zap.Error(err))
			out.failures = append(out.failures, domain.CaptureFailure{URL: url, Viewport: vp.Name, Error: err.Error()})
			continue
		}
		out.screenshots = append(out.screenshots, shot)
	}

	themes, err := s.ValidateThemeCompatibility(ctx, url)
	if err != nil {
		return out, err
	}
	out.themes = themes

	audit, err := s.auditPage(ctx, url)
	if err != nil {
		return out, err
	}
	out.audit = audit

	return out, nil
}

func (s *ValidationService) startSession(ctx context.Context) error {
	if err := s.session.EnsureBrowser(ctx); err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	if err := s.session.EnsureContext(ctx); err != nil {
		return fmt.Errorf("creating browser context: %w", err)
	}
	return nil
}

func (s *ValidationService) teardown() {
	if err := s.session.Teardown(); err != nil {
		s.logger.Warn("browser teardown failed", zap.Error(err))
	}
}

// isFatal reports whether err must abort the whole run rather than a single cell.
func (s *ValidationService) isFatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, domain.ErrSessionLost) ||
		errors.Is(err, domain.ErrContextNotInitialized) ||
		errors.Is(err, domain.ErrBrowserLaunch)
}

// withOperationTimeout bounds one capture, probe or theme iteration.
func (s *ValidationService) withOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.OperationTimeout())
}

// withPage opens a page sized to vp, navigates to url and hands it to fn.
// The page is closed before withPage returns, whatever fn does.
func (s *ValidationService) withPage(ctx context.Context, url string, vp domain.Viewport, fn func(context.Context, domain.Page) error) error {
	ctx, cancel := s.withOperationTimeout(ctx)
	defer cancel()

	page, err := s.session.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.logger.Debug("closing page", zap.String("url", url), zap.Error(cerr))
		}
	}()

	if err := page.SetViewport(ctx, vp); err != nil {
		return fmt.Errorf("setting viewport %s: %w", vp.Name, err)
	}
	target := resolveURL(s.cfg.BaseURL, url)
	if err := page.Navigate(ctx, target); err != nil {
		return fmt.Errorf("navigating to %s: %w", target, err)
	}
	return fn(ctx, page)
}

// defaultViewport is the viewport used by single-shot checks: the first
// desktop viewport, or the first configured one.
func (s *ValidationService) defaultViewport() domain.Viewport {
	for _, v := range s.cfg.Viewports {
		if v.DeviceClass == domain.DeviceDesktop {
			return v
		}
	}
	if len(s.cfg.Viewports) > 0 {
		return s.cfg.Viewports[0]
	}
	return domain.DefaultViewports()[0]
}

// resolveURL joins a page path onto the base URL. Absolute URLs pass through.
func resolveURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
