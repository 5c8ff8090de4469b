package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/landingkit/internal/db"
	"github.com/ziadkadry99/landingkit/internal/history"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.HistoryDB == "" {
			return fmt.Errorf("build history is disabled (history_db is empty)")
		}

		database, err := db.Open(resolve(cfg.HistoryDB))
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer database.Close()

		builds, err := history.NewStore(database).List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(builds)
		}
		if len(builds) == 0 {
			fmt.Println("No builds recorded yet. Run `landingkit build` first.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tSECTIONS\tERRORS\tTOOK\tOUTPUT")
		for _, b := range builds {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				shortID(b.ID),
				b.StartedAt.Local().Format(time.DateTime),
				b.Status,
				b.Sections,
				len(b.Errors),
				b.Duration,
				b.OutputDir,
			)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of builds to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print builds as JSON")
	rootCmd.AddCommand(historyCmd)
}
