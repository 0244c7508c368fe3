package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/abdidvp/visualkraft/internal/domain"
)

// page adapts a rod page to domain.Page.
type page struct {
	page    *rod.Page
	cancel  context.CancelFunc
	idle    time.Duration
	session *Session

	mu            sync.Mutex
	consoleErrors []string
}

// listen records console errors and uncaught exceptions until the page closes.
func (p *page) listen() {
	_ = proto.RuntimeEnable{}.Call(p.page)
	wait := p.page.EachEvent(
		func(ev *proto.RuntimeConsoleAPICalled) {
			if ev.Type == proto.RuntimeConsoleAPICalledTypeError {
				p.addConsoleError(stringifyConsoleArgs(ev.Args))
			}
		},
		func(ev *proto.RuntimeExceptionThrown) {
			if ev.ExceptionDetails == nil {
				return
			}
			msg := ev.ExceptionDetails.Text
			if ex := ev.ExceptionDetails.Exception; ex != nil && ex.Description != "" {
				msg = ex.Description
			}
			p.addConsoleError(msg)
		},
	)
	go wait()
}

func (p *page) addConsoleError(msg string) {
	if msg == "" {
		return
	}
	p.mu.Lock()
	p.consoleErrors = append(p.consoleErrors, msg)
	p.mu.Unlock()
}

func (p *page) ConsoleErrors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.consoleErrors...)
}

func (p *page) SetViewport(ctx context.Context, v domain.Viewport) error {
	return p.session.classify(p.page.Context(ctx).SetViewport(deviceMetrics(v)))
}

// deviceMetrics resizes the window only. Mobile emulation stays off for every
// device class: with it, a page without a viewport meta tag lays out at 980px
// and every mobile capture would report horizontal scroll.
func deviceMetrics(v domain.Viewport) *proto.EmulationSetDeviceMetricsOverride {
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             v.Width,
		Height:            v.Height,
		DeviceScaleFactor: 1,
	}
}

// Navigate loads url, waits for the load event and then for the network to
// stay quiet for the idle window.
func (p *page) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)
	waitIdle := pg.WaitRequestIdle(p.idle, nil, nil, nil)
	if err := pg.Navigate(url); err != nil {
		return p.session.classify(err)
	}
	if err := pg.WaitLoad(); err != nil {
		return p.session.classify(fmt.Errorf("waiting for load: %w", err))
	}
	waitIdle()
	return ctx.Err()
}

func (p *page) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	data, err := p.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	return data, p.session.classify(err)
}

func (p *page) ScrollWidth(ctx context.Context) (int, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.documentElement.scrollWidth`)
	if err != nil {
		return 0, p.session.classify(err)
	}
	return res.Value.Int(), nil
}

func (p *page) ApplyTheme(ctx context.Context, theme string, strip []string) error {
	if strip == nil {
		strip = []string{}
	}
	_, err := p.page.Context(ctx).Eval(`(theme, strip) => {
		const body = document.body;
		if (!body) throw new Error('document has no body');
		body.classList.remove(...strip);
		body.classList.add(theme);
	}`, theme, strip)
	return p.session.classify(err)
}

func (p *page) BodyClasses(ctx context.Context) ([]string, error) {
	var classes []string
	err := p.evalInto(ctx, &classes, `() => document.body ? Array.from(document.body.classList) : []`)
	return classes, err
}

const auditJS = `async (selector) => {
	if (typeof axe === 'undefined') throw new Error('axe-core did not load');
	const results = await axe.run(selector || document, { resultTypes: ['violations'] });
	const rules = (list, withNodes) => list.map((r) => ({
		id: r.id,
		impact: r.impact || '',
		description: r.description || '',
		help_url: r.helpUrl || '',
		nodes: withNodes ? r.nodes.map((n) => ({ target: n.target.map(String), html: n.html })) : [],
	}));
	return { violations: rules(results.violations, true), passes: rules(results.passes, false) };
}`

func (p *page) RunAccessibilityAudit(ctx context.Context, scriptURL, selector string) (domain.AuditReport, error) {
	if err := p.page.Context(ctx).AddScriptTag(scriptURL, ""); err != nil {
		return domain.AuditReport{}, p.session.classify(fmt.Errorf("injecting %s: %w", scriptURL, err))
	}
	var report domain.AuditReport
	err := p.evalInto(ctx, &report, auditJS, selector)
	return report, err
}

// vitalsJS reads buffered performance entries. Metrics the browser has no
// entry for are reported as -1.
const vitalsJS = `() => new Promise((resolve) => {
	const out = { navigation_ms: -1, lcp_ms: -1, fid_ms: -1, cls: -1 };
	const nav = performance.getEntriesByType('navigation')[0];
	if (nav && nav.loadEventEnd > 0) out.navigation_ms = nav.loadEventEnd - nav.startTime;
	const supported = (typeof PerformanceObserver !== 'undefined' && PerformanceObserver.supportedEntryTypes) || [];
	const observe = (type, fn) => {
		if (!supported.includes(type)) return;
		try {
			new PerformanceObserver((list) => list.getEntries().forEach(fn)).observe({ type, buffered: true });
		} catch (e) {}
	};
	if (supported.includes('layout-shift')) out.cls = 0;
	observe('largest-contentful-paint', (e) => { out.lcp_ms = Math.max(out.lcp_ms, e.renderTime || e.loadTime || e.startTime); });
	observe('first-input', (e) => { out.fid_ms = e.processingStart - e.startTime; });
	observe('layout-shift', (e) => { if (!e.hadRecentInput) out.cls += e.value; });
	setTimeout(() => resolve(out), 250);
})`

func (p *page) CollectVitals(ctx context.Context) (domain.VitalsSample, error) {
	var sample domain.VitalsSample
	err := p.evalInto(ctx, &sample, vitalsJS)
	return sample, err
}

const snapshotJS = `(props) => {
	const root = getComputedStyle(document.documentElement);
	const values = {};
	for (const name of props) values[name] = root.getPropertyValue(name).trim();
	return {
		html: document.documentElement.outerHTML,
		root_properties: values,
		body_classes: document.body ? Array.from(document.body.classList) : [],
	};
}`

func (p *page) Snapshot(ctx context.Context, properties []string) (domain.MarkupSnapshot, error) {
	if properties == nil {
		properties = []string{}
	}
	var snap domain.MarkupSnapshot
	err := p.evalInto(ctx, &snap, snapshotJS, properties)
	return snap, err
}

func (p *page) Close() error {
	defer p.cancel()
	return p.page.Close()
}

// evalInto runs js and decodes the value it resolves to into v.
func (p *page) evalInto(ctx context.Context, v any, js string, args ...any) error {
	res, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return p.session.classify(err)
	}
	if res == nil || res.Value.Nil() {
		return fmt.Errorf("script returned no value")
	}
	if err := res.Value.Unmarshal(v); err != nil {
		return fmt.Errorf("decoding script result: %w", err)
	}
	return nil
}

func stringifyConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if !a.Value.Nil() {
			parts = append(parts, a.Value.String())
			continue
		}
		if a.Description != "" {
			parts = append(parts, a.Description)
		}
	}
	return strings.Join(parts, " ")
}
