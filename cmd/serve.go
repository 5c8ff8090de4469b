package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/landingkit/internal/progress"
	"github.com/ziadkadry99/landingkit/internal/site"
)

var (
	servePort  int
	serveWatch bool
	serveOpen  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Builds the site, then serves the output directory on localhost. Connected
tabs reload after every rebuild. With --watch, changes to the config, the
content file or the asset directories trigger a rebuild.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		// A failing section should not stop the preview.
		cfg.FailOnError = false

		logger := newLogger()
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := build(ctx, cfg, logger, progress.Nop{})
		if err != nil {
			return err
		}

		srv := site.NewServer(site.ServerConfig{
			Dir:        res.OutputDir,
			Port:       cfg.Port,
			LiveReload: true,
		}, logger)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		fmt.Printf("Serving %s at %s\n", res.OutputDir, srv.URL())
		if serveOpen {
			site.OpenBrowser(srv.URL())
		}

		if serveWatch {
			paths := []string{baseDir(), resolve(cfg.ContentFile)}
			for _, dir := range assetDirs(cfg.Assets) {
				paths = append(paths, resolve(dir))
			}
			go func() {
				var ignore []string
				if cfg.HistoryDB != "" {
					ignore = append(ignore, resolve(cfg.HistoryDB))
				}
				err := site.Watch(ctx, paths, ignore, 200*time.Millisecond, logger, func() {
					if _, err := build(ctx, cfg, logger, progress.Nop{}); err != nil {
						logger.Error("rebuild failed", zap.Error(err))
						return
					}
					srv.Reload()
				})
				if err != nil {
					errCh <- err
				}
			}()
			logger.Info("watching for changes", zap.Strings("paths", paths))
		}

		select {
		case <-ctx.Done():
		case err := <-errCh:
			return err
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides port)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "rebuild when sources change")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the site in the default browser")
	rootCmd.AddCommand(serveCmd)
}
