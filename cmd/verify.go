package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/landingkit/internal/browsercheck"
)

var (
	verifyURL     string
	verifyTimeout time.Duration
	verifyJSON    bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the built page in headless Chrome",
	Long: `Opens the built page in headless Chrome, clicks every in-page navigation
link and checks that the page scrolls to the target minus the scroll
offset, then scrolls through the page and checks that every card has
been revealed. Pass --url to check a site that is already being served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		opts := browsercheck.Options{Timeout: verifyTimeout, Logger: logger}

		var (
			report *browsercheck.Report
			err    error
		)
		if verifyURL != "" {
			report, err = browsercheck.Check(cmd.Context(), verifyURL, opts)
		} else {
			cfg, cerr := loadConfig()
			if cerr != nil {
				return cerr
			}
			dir := resolve(cfg.OutputDir)
			if _, serr := os.Stat(dir); serr != nil {
				return fmt.Errorf("output %s not found; run `landingkit build` first", dir)
			}
			report, err = browsercheck.CheckDir(cmd.Context(), dir, opts)
		}
		if errors.Is(err, browsercheck.ErrNoBrowser) {
			return fmt.Errorf("%w; install Chrome or Chromium to use verify", err)
		}
		if err != nil {
			return err
		}

		if verifyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			for _, l := range report.Links {
				mark := "✓"
				if !l.OK {
					mark = "✗"
				}
				fmt.Printf("  %s %s → %.0fpx\n", mark, l.Href, l.Actual)
			}
			fmt.Printf("  %d/%d cards revealed\n", report.Revealed, report.Cards)
		}

		if failures := report.Failures(); len(failures) > 0 {
			return fmt.Errorf("%d check(s) failed", len(failures))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyURL, "url", "", "check this URL instead of the built output")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 30*time.Second, "overall browser timeout")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(verifyCmd)
}
