package domain

import (
	"context"
	"errors"
)

var (
	// ErrBrowserLaunch means the browser process could not be started. Fatal to a run.
	ErrBrowserLaunch = errors.New("browser launch failed")
	// ErrContextNotInitialized means a page was requested before EnsureContext.
	ErrContextNotInitialized = errors.New("browser context not initialized")
	// ErrSessionLost means the connection to the browser is gone. Fatal to a run.
	ErrSessionLost = errors.New("browser session lost")
	// ErrOutputUnavailable means screenshots cannot be written.
	ErrOutputUnavailable = errors.New("cannot write output")
)

// BrowserSession owns one browser process and one isolated browsing context.
type BrowserSession interface {
	// EnsureBrowser launches the browser once; later calls reuse it.
	EnsureBrowser(ctx context.Context) error
	// EnsureContext creates the shared browsing context once.
	EnsureContext(ctx context.Context) error
	// HasContext reports whether EnsureContext has succeeded and Teardown has not run.
	HasContext() bool
	// NewPage opens a page in the shared context. The caller must Close it.
	NewPage(ctx context.Context) (Page, error)
	// Teardown closes the context, then the browser. Safe to call repeatedly.
	Teardown() error
}

// Page is a single browser tab whose lifetime is bounded by one capture or probe.
type Page interface {
	SetViewport(ctx context.Context, v Viewport) error
	// Navigate loads url and waits for the network to go idle.
	Navigate(ctx context.Context, url string) error
	Screenshot(ctx context.Context, fullPage bool) ([]byte, error)
	ScrollWidth(ctx context.Context) (int, error)
	// ConsoleErrors returns the console errors seen since the page opened.
	ConsoleErrors() []string
	// ApplyTheme removes every class in strip from the body and adds theme.
	ApplyTheme(ctx context.Context, theme string, strip []string) error
	BodyClasses(ctx context.Context) ([]string, error)
	// RunAccessibilityAudit injects the audit script and runs it, scoped to
	// selector when it is not empty.
	RunAccessibilityAudit(ctx context.Context, scriptURL, selector string) (AuditReport, error)
	CollectVitals(ctx context.Context) (VitalsSample, error)
	// Snapshot returns the page markup and the computed values of the given
	// custom properties on the document root.
	Snapshot(ctx context.Context, properties []string) (MarkupSnapshot, error)
	Close() error
}

// ArtifactStore persists screenshot bytes.
type ArtifactStore interface {
	// Prepare makes sure the output location exists and is writable.
	Prepare() error
	// Save writes data under name and returns the resulting path.
	Save(name string, data []byte) (string, error)
}

// ConfigLoader loads harness configuration for a project directory.
type ConfigLoader interface {
	Load(projectPath string) (HarnessConfig, error)
}

// RunHistory persists summaries of past runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo resolves the revision of the site under test.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}
