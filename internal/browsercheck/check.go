// Package browsercheck drives a headless browser against a built site and
// verifies the navigation and reveal behaviors end to end.
package browsercheck

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	pagert "github.com/ziadkadry99/landingkit/internal/page"
	"github.com/ziadkadry99/landingkit/internal/site"
)

// ErrNoBrowser is returned when no Chrome/Chromium binary can be found.
var ErrNoBrowser = errors.New("no chrome or chromium binary found")

// Options configures a check run.
type Options struct {
	Width     int
	Height    int
	Timeout   time.Duration
	Tolerance float64 // allowed scroll position error in pixels
	Logger    *zap.Logger
}

func (o *Options) applyDefaults() {
	if o.Width == 0 {
		o.Width = 1280
	}
	if o.Height == 0 {
		o.Height = 720
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Tolerance == 0 {
		o.Tolerance = 2
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// LinkResult is the outcome of clicking one navigation anchor.
type LinkResult struct {
	Href     string  `json:"href"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	OK       bool    `json:"ok"`
}

// Report summarizes a check run.
type Report struct {
	URL      string       `json:"url"`
	Links    []LinkResult `json:"links"`
	Cards    int          `json:"cards"`
	Revealed int          `json:"revealed"`
}

// Failures lists human-readable problems found by the run.
func (r *Report) Failures() []string {
	var out []string
	for _, l := range r.Links {
		if !l.OK {
			out = append(out, fmt.Sprintf("%s: scrolled to %.0f, want %.0f", l.Href, l.Actual, l.Expected))
		}
	}
	if r.Revealed != r.Cards {
		out = append(out, fmt.Sprintf("%d of %d cards revealed after scrolling the page", r.Revealed, r.Cards))
	}
	return out
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failures()) == 0 }

// Available reports whether a browser binary can be located.
func Available() bool {
	_, ok := launcher.LookPath()
	return ok
}

// CheckDir serves dir on a loopback port and checks it.
func CheckDir(ctx context.Context, dir string, opts Options) (*Report, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listening: %w", err)
	}
	srv := &http.Server{
		Handler:           site.NewServer(site.ServerConfig{Dir: dir}, opts.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go srv.Serve(ln)
	defer srv.Close()

	return Check(ctx, "http://"+ln.Addr().String()+"/", opts)
}

// Check loads url in a headless browser, clicks every in-page anchor and
// scrolls through the page to trigger the card reveal.
func Check(ctx context.Context, url string, opts Options) (*Report, error) {
	opts.applyDefaults()

	path, ok := launcher.LookPath()
	if !ok {
		return nil, ErrNoBrowser
	}
	l := launcher.New().Bin(path).Headless(true)
	defer l.Cleanup()

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	browser := rod.New().ControlURL(u).Context(ctx).Timeout(opts.Timeout)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", url, err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width: opts.Width, Height: opts.Height, DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("setting viewport: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for load: %w", err)
	}

	report := &Report{URL: url}
	if err := checkLinks(page, opts, report); err != nil {
		return nil, err
	}
	if err := checkReveal(page, report); err != nil {
		return nil, err
	}
	opts.Logger.Debug("browser check finished",
		zap.Int("links", len(report.Links)),
		zap.Int("cards", report.Cards),
		zap.Int("revealed", report.Revealed),
	)
	return report, nil
}

func checkLinks(page *rod.Page, opts Options, report *Report) error {
	res, err := page.Eval(`() => Array.from(document.querySelectorAll('a[href^="#"]')).map(a => a.getAttribute("href"))`)
	if err != nil {
		return fmt.Errorf("listing anchors: %w", err)
	}
	for _, v := range res.Value.Arr() {
		href := v.Str()
		expected, found, err := expectedScroll(page, href)
		if err != nil {
			return err
		}
		if !found {
			// Unresolvable anchors are no-ops; nothing to measure.
			opts.Logger.Debug("skipping anchor without target", zap.String("href", href))
			continue
		}

		if _, err := page.Eval(`(href) => document.querySelector('a[href="' + href + '"]').click()`, href); err != nil {
			return fmt.Errorf("clicking %s: %w", href, err)
		}
		actual, err := settleScroll(page, expected, opts.Tolerance)
		if err != nil {
			return err
		}
		report.Links = append(report.Links, LinkResult{
			Href:     href,
			Expected: expected,
			Actual:   actual,
			OK:       math.Abs(actual-expected) <= opts.Tolerance,
		})
	}
	return nil
}

// expectedScrollJS resolves the landing position for an anchor. A
// missing or unparsable data-scroll-offset falls back to the default, as
// the client script does.
const expectedScrollJS = `(href, fallback) => {
	const el = document.getElementById(href.slice(1));
	if (!el) return null;
	let offset = parseFloat(document.body.getAttribute("data-scroll-offset"));
	if (isNaN(offset)) offset = fallback;
	const max = document.documentElement.scrollHeight - window.innerHeight;
	return Math.max(0, Math.min(el.offsetTop - offset, max));
}`

// expectedScroll computes where the page should land for href, clamped to
// the scrollable range the way the browser clamps window.scrollTo.
func expectedScroll(page *rod.Page, href string) (float64, bool, error) {
	res, err := page.Eval(expectedScrollJS, href, pagert.DefaultScrollOffset)
	if err != nil {
		return 0, false, fmt.Errorf("measuring %s: %w", href, err)
	}
	if res.Value.Nil() {
		return 0, false, nil
	}
	return res.Value.Num(), true, nil
}

// settleScroll polls window.scrollY until it reaches want or stops moving.
func settleScroll(page *rod.Page, want, tolerance float64) (float64, error) {
	last := math.NaN()
	for i := 0; i < 60; i++ {
		res, err := page.Eval(`() => window.scrollY`)
		if err != nil {
			return 0, fmt.Errorf("reading scroll position: %w", err)
		}
		y := res.Value.Num()
		if math.Abs(y-want) <= tolerance || (i > 10 && y == last) {
			return y, nil
		}
		last = y
		time.Sleep(50 * time.Millisecond)
	}
	return last, nil
}

func checkReveal(page *rod.Page, report *Report) error {
	if _, err := page.Eval(`() => window.scrollTo({ top: 0, behavior: "instant" })`); err != nil {
		return fmt.Errorf("scrolling to top: %w", err)
	}
	res, err := page.Eval(`() => document.documentElement.scrollHeight`)
	if err != nil {
		return fmt.Errorf("measuring page: %w", err)
	}
	height := res.Value.Num()
	step := 200.0
	for y := 0.0; y <= height; y += step {
		if _, err := page.Eval(`(y) => window.scrollTo({ top: y, behavior: "instant" })`, y); err != nil {
			return fmt.Errorf("scrolling: %w", err)
		}
		time.Sleep(30 * time.Millisecond)
	}
	time.Sleep(200 * time.Millisecond)

	res, err = page.Eval(`() => {
		const cards = Array.from(document.querySelectorAll(".card"));
		return { total: cards.length, revealed: cards.filter(c => c.style.opacity === "1").length };
	}`)
	if err != nil {
		return fmt.Errorf("inspecting cards: %w", err)
	}
	report.Cards = res.Value.Get("total").Int()
	report.Revealed = res.Value.Get("revealed").Int()
	return nil
}
