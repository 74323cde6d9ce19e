package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/devices"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/surejsai/GenericProductFluxer/config"
	"github.com/ysmood/gson"
)

// blockedResources are not needed to read a product description.
var blockedResources = map[proto.NetworkResourceType]struct{}{
	proto.NetworkResourceTypeImage:      {},
	proto.NetworkResourceTypeStylesheet: {},
	proto.NetworkResourceTypeFont:       {},
	proto.NetworkResourceTypeMedia:      {},
}

// BrowserEngine renders pages in a headless Chromium. The browser is
// launched on first use and tabs are reused through a page pool.
type BrowserEngine struct {
	cfg config.BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
	pool    rod.Pool[rod.Page]
}

// NewBrowserEngine creates a BrowserEngine. No browser process is started
// until the first Fetch.
func NewBrowserEngine(cfg config.BrowserConfig) *BrowserEngine {
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	return &BrowserEngine{cfg: cfg}
}

func (e *BrowserEngine) Name() string { return "browser" }

// connect launches and connects the browser once. A failed launch is
// retried on the next call.
func (e *BrowserEngine) connect() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return e.browser, nil
	}

	l := launcher.New().
		Headless(e.cfg.Headless).
		NoSandbox(e.cfg.NoSandbox)
	if e.cfg.BrowserBin != "" {
		l = l.Bin(e.cfg.BrowserBin)
	}
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser_engine: launch: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("browser_engine: connect: %w", err)
	}
	slog.Info("browser launched", "controlURL", controlURL, "maxPages", e.cfg.MaxPages)

	e.browser = browser
	e.pool = rod.NewPagePool(e.cfg.MaxPages)
	return browser, nil
}

func (e *BrowserEngine) newPage(browser *rod.Browser) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	if e.cfg.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}
	return page, nil
}

func (e *BrowserEngine) Fetch(ctx context.Context, req *FetchRequest) (*Response, error) {
	browser, err := e.connect()
	if err != nil {
		return nil, err
	}

	page, err := e.pool.Get(func() (*rod.Page, error) { return e.newPage(browser) })
	if err != nil {
		return nil, fmt.Errorf("browser_engine: acquire page: %w", err)
	}
	// Uses the page without the request context so cleanup survives a
	// cancelled fetch.
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		e.pool.Put(page)
	}()

	if req.DeviceType == "mobile" {
		if err := page.Emulate(devices.IPhoneX); err != nil {
			slog.Debug("device emulation failed", "error", err)
		}
	} else {
		_ = page.Emulate(devices.Clear)
	}

	if u, parseErr := url.Parse(req.URL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{
				"Referer": "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname()),
			}),
		}.Call(page)
	}

	router := blockResources(page)
	defer func() { _ = router.Stop() }()

	p := page.Context(ctx)
	if err := p.Navigate(req.URL); err != nil {
		return nil, fmt.Errorf("browser_engine: navigate: %w", err)
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", err)
	}

	status := 0
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); err == nil {
		status = res.Value.Int()
	}

	markup, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("browser_engine: read html: %w", err)
	}

	return &Response{
		Body:       markup,
		StatusCode: status,
		Rendered:   true,
		EngineName: e.Name(),
	}, nil
}

// Close drains the page pool and kills the browser process.
func (e *BrowserEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return
	}
	e.pool.Cleanup(func(p *rod.Page) { _ = p.Close() })
	if err := e.browser.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
	e.browser = nil
	slog.Info("browser closed")
}

// blockResources aborts requests for images, stylesheets, fonts and media.
// The caller must Stop the returned router.
func blockResources(page *rod.Page) *rod.HijackRouter {
	router := page.HijackRequests()
	_ = router.Add("*", "", func(h *rod.Hijack) {
		if _, blocked := blockedResources[h.Request.Type()]; blocked {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
	return router
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[strings.TrimSpace(k)] = gson.New(v)
	}
	return m
}
