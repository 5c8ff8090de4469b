package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/ziadkadry99/landingkit/internal/config"
	"github.com/ziadkadry99/landingkit/internal/content"
	"github.com/ziadkadry99/landingkit/internal/page"
	"github.com/ziadkadry99/landingkit/internal/progress"
	"github.com/ziadkadry99/landingkit/internal/render"
)

// SiteGenerator renders a page definition into a static site directory.
type SiteGenerator struct {
	Config   *config.Config
	Page     *content.Page
	Renderer *render.Renderer
	Logger   *zap.Logger
	Reporter progress.Reporter
	Version  string
	// BaseDir is where asset globs and a custom shell are resolved.
	BaseDir string
}

// NewSiteGenerator creates a SiteGenerator with quiet defaults.
func NewSiteGenerator(cfg *config.Config, p *content.Page) *SiteGenerator {
	return &SiteGenerator{
		Config:   cfg,
		Page:     p,
		Logger:   zap.NewNop(),
		Reporter: progress.Nop{},
		Version:  "dev",
		BaseDir:  ".",
	}
}

// Result summarises a build.
type Result struct {
	OutputDir string
	Sections  int
	Assets    int
	// Errors holds one entry per section that was left out.
	Errors   []error
	Duration time.Duration
}

// shellData holds the data passed to the shell template. The behavior
// fields are also written onto <body> after mounting.
type shellData struct {
	Title           string
	Lang            string
	Version         string
	ScrollOffset    float64
	RevealThreshold float64
}

const buildSteps = 5

// Generate builds the site. Section render errors do not fail the build;
// they are returned in Result.Errors.
func (g *SiteGenerator) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()
	if g.Renderer == nil {
		g.Renderer = render.New(render.WithLogger(g.Logger))
	}
	cfg := g.Config
	out := cfg.OutputDir
	if !filepath.IsAbs(out) {
		out = filepath.Join(g.BaseDir, out)
	}

	g.Reporter.Start(buildSteps)
	defer g.Reporter.Finish()

	// Render the shell.
	g.Reporter.Update(1, "rendering shell")
	shell, err := g.renderShell()
	if err != nil {
		return nil, err
	}

	// Mount navigation and sections.
	g.Reporter.Update(2, "rendering sections")
	opts := cfg.PageOptions()
	opts.Renderer = g.Renderer
	opts.Logger = g.Logger
	mounted, err := page.Mount(bytes.NewReader(shell), g.Page.Sections, opts)
	if err != nil {
		return nil, fmt.Errorf("mounting page: %w", err)
	}
	setBehaviorAttrs(mounted.Document, cfg)
	index, err := mounted.Document.Html()
	if err != nil {
		return nil, fmt.Errorf("serialising page: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, err
	}

	g.Reporter.Update(3, "writing index.html")
	if err := writeFile(filepath.Join(out, "index.html"), []byte(index)); err != nil {
		return nil, err
	}

	// Write static assets and the resolved section data.
	g.Reporter.Update(4, "writing static files")
	if err := writeStatic(out); err != nil {
		return nil, err
	}
	data, err := g.Page.JSON()
	if err != nil {
		return nil, fmt.Errorf("encoding sections: %w", err)
	}
	if err := writeFile(filepath.Join(out, "sections.json"), data); err != nil {
		return nil, err
	}

	g.Reporter.Update(5, "copying assets")
	assets, err := CopyAssets(ctx, g.BaseDir, out, cfg.Assets)
	if err != nil {
		return nil, fmt.Errorf("copying assets: %w", err)
	}

	res := &Result{
		OutputDir: out,
		Sections:  len(g.Page.Sections) - len(mounted.Errors),
		Assets:    assets,
		Errors:    mounted.Errors,
		Duration:  time.Since(start),
	}
	g.Logger.Info("site built",
		zap.String("output", out),
		zap.Int("sections", res.Sections),
		zap.Int("assets", res.Assets),
		zap.Int("errors", len(res.Errors)),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}

func (g *SiteGenerator) renderShell() ([]byte, error) {
	src := shellTemplate
	if g.Config.Shell != "" {
		path := g.Config.Shell
		if !filepath.IsAbs(path) {
			path = filepath.Join(g.BaseDir, path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading shell %s: %w", path, err)
		}
		src = string(raw)
	}

	tmpl, err := template.New("shell").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}

	data := shellData{
		Title:           g.Config.Title,
		Lang:            g.Config.Lang,
		Version:         g.Version,
		ScrollOffset:    g.Config.ScrollOffset,
		RevealThreshold: g.Config.RevealThreshold,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing shell template: %w", err)
	}
	return buf.Bytes(), nil
}

// setBehaviorAttrs writes the behavior settings the client script reads
// onto <body>, whatever shell the page was mounted into.
func setBehaviorAttrs(doc *goquery.Document, cfg *config.Config) {
	body := doc.Find("body").First()
	body.SetAttr("data-scroll-offset", strconv.FormatFloat(cfg.ScrollOffset, 'f', -1, 64))
	body.SetAttr("data-reveal-threshold", strconv.FormatFloat(cfg.RevealThreshold, 'f', -1, 64))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// injectBeforeBody inserts snippet before the closing body tag, or
// appends it when the document has none.
func injectBeforeBody(html, snippet string) string {
	idx := strings.LastIndex(strings.ToLower(html), "</body>")
	if idx == -1 {
		return html + snippet
	}
	return html[:idx] + snippet + html[idx:]
}
