package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/landingkit/internal/progress"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Long: `Renders navigation and sections into index.html and writes style.css,
script.js, sections.json and any configured assets to the output directory.
Sections with an unknown type are reported and left out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildOutput != "" {
			cfg.OutputDir = buildOutput
		}

		logger := newLogger()
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reporter := progress.NewReporter()
		if verbose {
			reporter = progress.Nop{}
		}

		res, err := build(ctx, cfg, logger, reporter)
		if res != nil {
			fmt.Printf("Built %d section(s), %d asset(s) into %s in %s\n",
				res.Sections, res.Assets, res.OutputDir, res.Duration.Round(time.Millisecond))
		}
		return err
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (overrides output_dir)")
	rootCmd.AddCommand(buildCmd)
}
