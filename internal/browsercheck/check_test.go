package browsercheck

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/landingkit/internal/config"
	"github.com/ziadkadry99/landingkit/internal/content"
	"github.com/ziadkadry99/landingkit/internal/page"
	"github.com/ziadkadry99/landingkit/internal/site"
)

func TestReportFailures(t *testing.T) {
	r := &Report{
		Links: []LinkResult{
			{Href: "#home", Expected: 0, Actual: 0, OK: true},
			{Href: "#products", Expected: 820, Actual: 400, OK: false},
		},
		Cards:    3,
		Revealed: 2,
	}
	failures := r.Failures()
	require.Len(t, failures, 2)
	require.Contains(t, failures[0], "#products")
	require.Contains(t, failures[1], "2 of 3 cards")
	require.False(t, r.OK())

	require.True(t, (&Report{Cards: 1, Revealed: 1}).OK())
}

func TestCheckBuiltSite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser check in short mode")
	}
	if !Available() {
		t.Skip("no browser available")
	}

	cfg := config.DefaultConfig()
	g := site.NewSiteGenerator(cfg, content.DefaultPage())
	g.BaseDir = t.TempDir()
	res, err := g.Generate(context.Background())
	require.NoError(t, err)

	report, err := CheckDir(context.Background(), res.OutputDir, Options{})
	require.NoError(t, err)
	require.Len(t, report.Links, 2)
	require.Equal(t, 3, report.Cards)
	require.Empty(t, report.Failures())
}

func TestOffsetFallbackMatchesClientScript(t *testing.T) {
	js, err := os.ReadFile(filepath.Join("..", "site", "static", "script.js"))
	require.NoError(t, err)

	m := regexp.MustCompile(`if \(isNaN\(offset\)\) \{ offset = ([0-9.]+); \}`).FindSubmatch(js)
	require.NotNil(t, m, "client script has no offset fallback")
	fallback, err := strconv.ParseFloat(string(m[1]), 64)
	require.NoError(t, err)
	require.Equal(t, float64(page.DefaultScrollOffset), fallback)

	require.Contains(t, expectedScrollJS, "if (isNaN(offset)) offset = fallback;")
}

func TestCheckShellWithoutBehaviorAttrs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser check in short mode")
	}
	if !Available() {
		t.Skip("no browser available")
	}

	g := site.NewSiteGenerator(config.DefaultConfig(), content.DefaultPage())
	g.BaseDir = t.TempDir()
	res, err := g.Generate(context.Background())
	require.NoError(t, err)

	// Strip the attributes so both sides fall back to their defaults.
	index := filepath.Join(res.OutputDir, "index.html")
	raw, err := os.ReadFile(index)
	require.NoError(t, err)
	stripped := regexp.MustCompile(` data-(scroll-offset|reveal-threshold)="[^"]*"`).ReplaceAll(raw, nil)
	require.NoError(t, os.WriteFile(index, stripped, 0o644))

	report, err := CheckDir(context.Background(), res.OutputDir, Options{})
	require.NoError(t, err)
	require.Empty(t, report.Failures())
}
