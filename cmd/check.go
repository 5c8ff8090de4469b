package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/landingkit/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the section file without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()
		defer logger.Sync()

		p, err := loadPage(cfg, logger)
		if err != nil {
			return err
		}

		r := render.New(render.WithLogger(logger))
		if _, err := r.RenderNavigation(p.Sections); err != nil {
			return fmt.Errorf("rendering navigation: %w", err)
		}
		_, errs := r.RenderSections(p.Sections)
		for _, e := range errs {
			fmt.Printf("  ✗ %v\n", e)
		}
		if len(errs) > 0 {
			return errors.New("some sections cannot be rendered")
		}
		fmt.Printf("  ✓ %d section(s) OK (%s)\n", len(p.Sections), resolve(cfg.ContentFile))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
