package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/landingkit/internal/config"
	"github.com/ziadkadry99/landingkit/internal/content"
	"github.com/ziadkadry99/landingkit/internal/db"
	"github.com/ziadkadry99/landingkit/internal/history"
	"github.com/ziadkadry99/landingkit/internal/logging"
	"github.com/ziadkadry99/landingkit/internal/progress"
	"github.com/ziadkadry99/landingkit/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `landingkit init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// baseDir is the directory relative paths in the config resolve against.
func baseDir() string {
	return filepath.Dir(cfgFile)
}

func resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir(), path)
}

func newLogger() *zap.Logger {
	return logging.OrNop(verbose)
}

// loadPage reads the configured content file, falling back to the
// built-in page when it does not exist.
func loadPage(cfg *config.Config, logger *zap.Logger) (*content.Page, error) {
	path := resolve(cfg.ContentFile)
	p, err := content.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("content loaded", zap.String("path", path), zap.Int("sections", len(p.Sections)))
	return p, nil
}

// build runs one full site build and records it in the history database.
// Section errors are logged; the returned error is only set for failures
// that stopped the build, or for section errors when fail_on_error is on.
func build(ctx context.Context, cfg *config.Config, logger *zap.Logger, reporter progress.Reporter) (*site.Result, error) {
	start := time.Now()
	p, err := loadPage(cfg, logger)
	if err != nil {
		recordBuild(ctx, cfg, logger, history.Build{StartedAt: start, Status: history.StatusFailed, Errors: []string{err.Error()}})
		return nil, err
	}

	g := site.NewSiteGenerator(cfg, p)
	g.Logger = logger
	g.Reporter = reporter
	g.Version = Version
	g.BaseDir = baseDir()

	res, err := g.Generate(ctx)
	if err != nil {
		recordBuild(ctx, cfg, logger, history.Build{StartedAt: start, Status: history.StatusFailed, Errors: []string{err.Error()}})
		return nil, fmt.Errorf("building site: %w", err)
	}

	msgs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		logger.Warn("section skipped", zap.Error(e))
		msgs = append(msgs, e.Error())
	}
	recordBuild(ctx, cfg, logger, history.Build{
		StartedAt: start,
		Duration:  res.Duration,
		Sections:  res.Sections,
		Assets:    res.Assets,
		Errors:    msgs,
		Status:    history.StatusFor(nil, len(msgs)),
	})

	if cfg.FailOnError && len(res.Errors) > 0 {
		return res, fmt.Errorf("%d section(s) failed to render:\n  %s", len(msgs), strings.Join(msgs, "\n  "))
	}
	return res, nil
}

// recordBuild stores b in the history database. History is best effort:
// failures are logged and never fail the build.
func recordBuild(ctx context.Context, cfg *config.Config, logger *zap.Logger, b history.Build) {
	if cfg.HistoryDB == "" {
		return
	}
	database, err := db.Open(resolve(cfg.HistoryDB))
	if err != nil {
		logger.Debug("history unavailable", zap.Error(err))
		return
	}
	defer database.Close()

	b.OutputDir = cfg.OutputDir
	b.ContentFile = cfg.ContentFile
	id, err := history.NewStore(database).Record(ctx, b)
	if err != nil {
		logger.Warn("recording build", zap.Error(err))
		return
	}
	logger.Debug("build recorded", zap.String("id", id), zap.String("status", string(b.Status)))
}

// assetDirs returns the fixed directory prefix of each asset glob, the
// part a watcher can subscribe to.
func assetDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		if base == "." || seen[base] {
			continue
		}
		seen[base] = true
		dirs = append(dirs, filepath.FromSlash(base))
	}
	return dirs
}

// shortID abbreviates a build id for tabular output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
