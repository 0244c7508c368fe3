// Package browser implements the browser ports on top of go-rod.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/domain"
)

// Config controls how Chrome is launched.
type Config struct {
	Bin        string
	Headless   bool
	NoSandbox  bool
	IdleWindow time.Duration
}

// ConfigFrom maps harness configuration onto launcher settings.
func ConfigFrom(cfg domain.HarnessConfig) Config {
	return Config{
		Bin:        cfg.Browser.Bin,
		Headless:   cfg.Browser.Headless,
		NoSandbox:  cfg.Browser.NoSandbox,
		IdleWindow: time.Duration(cfg.Browser.IdleWindowMs) * time.Millisecond,
	}
}

// Default viewport of pages opened in the shared context, before the caller resizes them.
const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// Session owns the launched Chrome process and one incognito context.
type Session struct {
	cfg    Config
	logger *zap.Logger

	mu        sync.Mutex
	launcher  *launcher.Launcher
	browser   *rod.Browser
	incognito *rod.Browser
}

// New creates a session; nothing is launched until EnsureBrowser.
func New(cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{cfg: cfg, logger: logger}
}

// EnsureBrowser launches Chrome once. A stale connection is replaced.
func (s *Session) EnsureBrowser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if _, err := s.browser.Version(); err == nil {
			return nil
		}
		s.logger.Warn("stale browser connection detected, relaunching")
		_ = s.closeLocked()
	}

	l := launcher.New().Context(ctx).Headless(s.cfg.Headless).NoSandbox(s.cfg.NoSandbox)
	if s.cfg.Bin != "" {
		l = l.Bin(s.cfg.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBrowserLaunch, err)
	}

	b := rod.New().ControlURL(controlURL).NoDefaultDevice()
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: connect to chrome: %v", domain.ErrBrowserLaunch, err)
	}

	s.launcher = l
	s.browser = b
	s.logger.Debug("browser launched", zap.String("control_url", controlURL), zap.Bool("headless", s.cfg.Headless))
	return nil
}

// EnsureContext creates the shared incognito context once.
func (s *Session) EnsureContext(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.incognito != nil {
		return nil
	}
	if s.browser == nil {
		return fmt.Errorf("browser not launched: %w", domain.ErrContextNotInitialized)
	}
	incognito, err := s.browser.Incognito()
	if err != nil {
		return fmt.Errorf("incognito context: %w", err)
	}
	s.incognito = incognito
	return nil
}

func (s *Session) HasContext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incognito != nil
}

// NewPage opens a page in the shared context with a console-error listener attached.
func (s *Session) NewPage(ctx context.Context) (domain.Page, error) {
	s.mu.Lock()
	incognito := s.incognito
	s.mu.Unlock()
	if incognito == nil {
		return nil, domain.ErrContextNotInitialized
	}

	p, err := incognito.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, s.classify(fmt.Errorf("create page: %w", err))
	}

	// The page outlives ctx; its own context ends the event listener on Close.
	pctx, cancel := context.WithCancel(context.Background())
	p = p.Context(pctx)
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             defaultWidth,
		Height:            defaultHeight,
		DeviceScaleFactor: 1,
	}).Call(p); err != nil {
		s.logger.Debug("default viewport not applied", zap.Error(err))
	}

	pg := &page{
		page:    p,
		cancel:  cancel,
		idle:    s.cfg.IdleWindow,
		session: s,
	}
	pg.listen()
	return pg, nil
}

// Teardown closes the context and then the browser. Either may already be gone.
func (s *Session) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	var errs []error
	if s.incognito != nil {
		if err := s.incognito.Close(); err != nil {
			s.logger.Debug("closing browser context", zap.Error(err))
		}
		s.incognito = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
			if s.launcher != nil {
				s.launcher.Kill()
			}
		}
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
	return errors.Join(errs...)
}

// classify marks err as a lost session when the browser no longer answers.
func (s *Session) classify(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.mu.Lock()
	b := s.browser
	s.mu.Unlock()
	if b == nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionLost, err)
	}
	if _, verr := b.Version(); verr != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionLost, err)
	}
	return err
}
