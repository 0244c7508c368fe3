package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/abdidvp/visualkraft/internal/domain/scoring"
)

const testBaseURL = "http://site.test"

// pageBehavior scripts how a fake page answers once it has navigated to a URL.
type pageBehavior struct {
	navigateErr   error
	scrollWidth   int
	scrollErr     error
	consoleErrors []string
	// droppedThemes are accepted by ApplyTheme but never reach the body.
	droppedThemes []string
	audit         domain.AuditReport
	auditErr      error
	vitals        domain.VitalsSample
	vitalsErr     error
	snapshot      domain.MarkupSnapshot
	snapshotErr   error
}

// goodPage is a page that satisfies every probe.
func goodPage() pageBehavior {
	return pageBehavior{
		audit:  domain.AuditReport{Passes: []domain.AuditRule{{ID: "document-title"}}},
		vitals: domain.VitalsSample{NavigationMs: 400, LCPMs: 900, FIDMs: 5, CLS: 0.01},
		snapshot: domain.MarkupSnapshot{
			HTML: `<html><body class="light"><div class="md-card elevation-1 glass-panel typescale-body"></div></body></html>`,
			RootProperties: map[string]string{
				"--md-sys-color-primary":             "#6750a4",
				"--md-sys-typescale-body-large-font": "Roboto",
				"--brand-primary":                    "#d97706",
			},
			BodyClasses: []string{"light"},
		},
	}
}

// fakeSession is an in-memory domain.BrowserSession. Behaviour is keyed by
// the resolved URL a page navigates to.
type fakeSession struct {
	mu         sync.Mutex
	site       map[string]pageBehavior
	launchErr  error
	newPageErr error
	launched   bool
	hasContext bool
	teardowns  int
	opened     int
	closed     int
	navigated  []string
	lastPage   *fakePage
}

func newFakeSession(site map[string]pageBehavior) *fakeSession {
	return &fakeSession{site: site}
}

func (f *fakeSession) EnsureBrowser(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launchErr != nil {
		return f.launchErr
	}
	f.launched = true
	return nil
}

func (f *fakeSession) EnsureContext(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.launched {
		return errors.New("browser not launched")
	}
	f.hasContext = true
	return nil
}

func (f *fakeSession) HasContext() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasContext
}

func (f *fakeSession) NewPage(context.Context) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasContext {
		return nil, domain.ErrContextNotInitialized
	}
	if f.newPageErr != nil {
		return nil, f.newPageErr
	}
	f.opened++
	f.lastPage = &fakePage{session: f}
	return f.lastPage, nil
}

func (f *fakeSession) Teardown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teardowns++
	f.hasContext = false
	f.launched = false
	return nil
}

func (f *fakeSession) behaviorFor(url string) pageBehavior {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navigated = append(f.navigated, url)
	if b, ok := f.site[url]; ok {
		return b
	}
	return goodPage()
}

func (f *fakeSession) pageClosed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func (f *fakeSession) counts() (opened, closed, teardowns int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed, f.teardowns
}

type fakePage struct {
	session  *fakeSession
	behavior pageBehavior
	viewport domain.Viewport
	classes  []string
	loaded   bool
	// themed holds the body classes right after each theme was applied.
	themed map[string][]string
	// auditScopes records the selector of every accessibility audit.
	auditScopes []string
}

func (p *fakePage) SetViewport(_ context.Context, v domain.Viewport) error {
	p.viewport = v
	return nil
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.behavior = p.session.behaviorFor(url)
	if p.behavior.navigateErr != nil {
		return p.behavior.navigateErr
	}
	p.classes = slices.Clone(p.behavior.snapshot.BodyClasses)
	p.loaded = true
	return nil
}

func (p *fakePage) Screenshot(context.Context, bool) ([]byte, error) {
	if !p.loaded {
		return nil, errors.New("page not loaded")
	}
	return []byte(fmt.Sprintf("png:%s:%d", p.viewport.Name, p.viewport.Width)), nil
}

func (p *fakePage) ScrollWidth(context.Context) (int, error) {
	if p.behavior.scrollErr != nil {
		return 0, p.behavior.scrollErr
	}
	if p.behavior.scrollWidth > 0 {
		return p.behavior.scrollWidth, nil
	}
	return p.viewport.Width, nil
}

func (p *fakePage) ConsoleErrors() []string {
	return slices.Clone(p.behavior.consoleErrors)
}

func (p *fakePage) ApplyTheme(_ context.Context, theme string, strip []string) error {
	p.classes = slices.DeleteFunc(p.classes, func(c string) bool { return slices.Contains(strip, c) })
	if !slices.Contains(p.behavior.droppedThemes, theme) {
		p.classes = append(p.classes, theme)
	}
	if p.themed == nil {
		p.themed = make(map[string][]string)
	}
	p.themed[theme] = slices.Clone(p.classes)
	return nil
}

func (p *fakePage) BodyClasses(context.Context) ([]string, error) {
	return slices.Clone(p.classes), nil
}

// RunAccessibilityAudit fails like axe does when its scope selector matches nothing.
func (p *fakePage) RunAccessibilityAudit(_ context.Context, _ string, selector string) (domain.AuditReport, error) {
	p.auditScopes = append(p.auditScopes, selector)
	if selector != "" {
		if n, err := scoring.SelectorMatches(p.behavior.snapshot.HTML, selector); err != nil || n == 0 {
			return domain.AuditReport{}, errors.New("No elements found for include in page Context")
		}
	}
	return p.behavior.audit, p.behavior.auditErr
}

func (p *fakePage) CollectVitals(context.Context) (domain.VitalsSample, error) {
	return p.behavior.vitals, p.behavior.vitalsErr
}

func (p *fakePage) Snapshot(context.Context, []string) (domain.MarkupSnapshot, error) {
	return p.behavior.snapshot, p.behavior.snapshotErr
}

func (p *fakePage) Close() error {
	p.session.pageClosed()
	return nil
}

// memStore is an in-memory domain.ArtifactStore.
type memStore struct {
	mu         sync.Mutex
	prepareErr error
	saveErr    error
	files      map[string][]byte
	prepared   bool
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (m *memStore) Prepare() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prepareErr != nil {
		return m.prepareErr
	}
	m.prepared = true
	return nil
}

func (m *memStore) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	path := "mem/" + name
	for i := 1; m.files[path] != nil; i++ {
		path = fmt.Sprintf("mem/%d-%s", i, name)
	}
	m.files[path] = data
	return path, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// testConfig is the default config with timings collapsed for tests.
func testConfig() domain.HarnessConfig {
	cfg := domain.DefaultConfig()
	cfg.BaseURL = testBaseURL
	cfg.SettleDelayMs = 0
	cfg.ThemeSettleDelayMs = 0
	cfg.OperationTimeoutMs = 5000
	return cfg
}

func newTestService(t *testing.T, session *fakeSession, store *memStore, cfg domain.HarnessConfig) *ValidationService {
	t.Helper()
	svc := NewValidationService(session, store, cfg, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}
