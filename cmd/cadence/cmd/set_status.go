package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/history"
	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

var (
	setStatusID    string
	setStatusValue string
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "Set a task's status and recompute the plan",
	Long: `Sets the status of one task, then reapplies mode overrides, rolls up
parent statuses, syncs legacy flags, and persists. Only tasks accept a
status; skipped is reserved for project-mode overrides.`,
	RunE: runSetStatus,
}

func init() {
	rootCmd.AddCommand(setStatusCmd)
	setStatusCmd.Flags().StringVar(&setStatusID, "id", "", "workflow item id (required)")
	setStatusCmd.Flags().StringVar(&setStatusValue, "status", "", "new status (required)")
	_ = setStatusCmd.MarkFlagRequired("id")
	_ = setStatusCmd.MarkFlagRequired("status")
}

func runSetStatus(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	status, err := core.ParseStatus(setStatusValue)
	if err != nil {
		return err
	}

	var previous core.ItemStatus
	doc, err := openStore(root).Update(cmd.Context(), func(doc *core.StateDocument) error {
		if item := core.FindItem(doc.Workflow.Plan, setStatusID); item != nil {
			previous = item.Status
		}
		return core.SetItemStatus(doc, setStatusID, status)
	})
	if err != nil {
		return err
	}

	log.WithOperation("set-status").WithItem(setStatusID).
		Info("status updated", "from", previous, "to", status)
	withJournal(root, func(j *history.Journal) error {
		_, err := j.RecordTransition(context.Background(), setStatusID, string(previous), string(status))
		return err
	})

	res := core.Resolve(doc)
	return outputJSON(statusPayload{
		NextItem: res.NextItem,
		Route:    res.Route,
		Summary:  res.Summary,
	})
}
