package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/history"
	"github.com/hugo-lorenzo-mato/cadence/internal/checkpoint"
)

var (
	checkpointScope string
	checkpointKey   string
	checkpointPaths []string
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Commit working-tree changes as grouped atomic commits",
	Long: `Diffs the working tree, classifies changed files into semantic groups,
chunks each group into size-bounded batches, and commits them
sequentially. A mid-sequence failure stops the run but keeps earlier
commits. With repo-enabled, one push follows a fully successful run.`,
	RunE: runCheckpoint,
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
	checkpointCmd.Flags().StringVar(&checkpointScope, "scope", "", "commit scope, usually the acting skill (required)")
	checkpointCmd.Flags().StringVar(&checkpointKey, "checkpoint", "", "checkpoint key summarizing the unit of work (required)")
	checkpointCmd.Flags().StringSliceVar(&checkpointPaths, "paths", nil,
		"restrict the diff to these prefixes or globs")
	_ = checkpointCmd.MarkFlagRequired("scope")
	_ = checkpointCmd.MarkFlagRequired("checkpoint")
}

func runCheckpoint(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	client, err := openGit(root)
	if err != nil {
		return err
	}

	doc, err := openStore(root).Load(cmd.Context())
	if err != nil {
		return err
	}

	fin := checkpoint.NewFinalizer(client, checkpointOptions())
	result, runErr := fin.Run(cmd.Context(), checkpointScope, checkpointKey,
		checkpointPaths, doc.State.RepoEnabled)

	recordCheckpointRun(root, result, runErr)
	if runErr != nil {
		// Batches that landed before the failure stand and are not
		// retried; the operator needs to see them alongside the error.
		writeCommittedBatches(os.Stderr, result.Batches)
		return runErr
	}

	fmt.Printf("status=%s\n", result.Status)
	writeCommittedBatches(os.Stdout, result.Batches)
	if result.PushError != "" {
		fmt.Fprintf(os.Stderr, "push_error=%s\n", result.PushError)
	} else if result.Pushed {
		fmt.Println("pushed")
	}
	return nil
}

func recordCheckpointRun(root string, result checkpoint.Result, runErr error) {
	committed := 0
	for _, b := range result.Batches {
		if b.Committed {
			committed++
		}
	}
	status := result.Status
	if runErr != nil {
		status = "failed"
	}
	withJournal(root, func(j *history.Journal) error {
		id, err := j.RecordCheckpoint(context.Background(), history.CheckpointRun{
			Scope:      checkpointScope,
			Checkpoint: checkpointKey,
			Status:     status,
			Batches:    len(result.Batches),
			Committed:  committed,
			Pushed:     result.Pushed,
			PushError:  result.PushError,
		})
		if err == nil {
			log.WithCheckpoint(checkpointScope, checkpointKey).
				Debug("checkpoint recorded", "run_id", id)
		}
		return err
	})
}

// writeCommittedBatches lists every batch that was actually committed.
func writeCommittedBatches(w io.Writer, batches []checkpoint.Batch) {
	for _, batch := range batches {
		if !batch.Committed {
			continue
		}
		fmt.Fprintf(w, "  committed %s (%d files) %s\n",
			batch.Message, len(batch.Paths), batch.Hash[:minInt(8, len(batch.Hash))])
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
