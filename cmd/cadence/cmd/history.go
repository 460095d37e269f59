package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent status transitions and checkpoint runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries per section")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("history journal disabled")
		return nil
	}

	dbPath := filepath.Join(root, filepath.FromSlash(cfg.History.Path))
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("no history recorded yet")
		return nil
	}

	j, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	transitions, err := j.RecentTransitions(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	runs, err := j.RecentCheckpoints(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tITEM\tTRANSITION")
	for _, t := range transitions {
		fmt.Fprintf(w, "%s\t%s\t%s -> %s\n",
			t.RecordedAt.Local().Format(time.DateTime), t.ItemID, t.FromStatus, t.ToStatus)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSCOPE\tCHECKPOINT\tSTATUS\tCOMMITS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\n",
			r.RecordedAt.Local().Format(time.DateTime), r.Scope, r.Checkpoint,
			r.Status, r.Committed, r.Batches)
	}
	return w.Flush()
}
