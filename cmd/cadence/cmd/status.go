package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workflow status and the resolved route",
	Long:  "Display the plan with derived statuses, the next item, and its route.",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

// statusPayload is the fixed response shape of the status operation.
type statusPayload struct {
	NextItem core.NodeRef `json:"next_item"`
	Route    *core.Route  `json:"route,omitempty"`
	Summary  core.Summary `json:"summary"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	doc, err := openStore(root).Load(cmd.Context())
	if err != nil {
		return err
	}
	res := core.Resolve(doc)

	if statusJSON {
		return outputJSON(statusPayload{
			NextItem: res.NextItem,
			Route:    res.Route,
			Summary:  res.Summary,
		})
	}

	fmt.Printf("Project mode: %s\n", doc.State.ProjectMode)
	fmt.Printf("Completion: %d%%\n", res.Summary.CompletionPercent)
	if res.Complete() {
		fmt.Println("Workflow complete.")
	} else {
		fmt.Printf("Next: %s (%s)\n", res.NextItem.Title, res.NextItem.ID)
		if res.Route != nil {
			fmt.Printf("Route: %s\n", res.Route.SkillName)
		}
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tKIND\tSTATUS")
	core.WalkPlan(doc.Workflow.Plan, func(item *core.WorkflowItem, path []*core.WorkflowItem) {
		indent := strings.Repeat("  ", len(path))
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", indent, item.Title, item.Kind, item.Status)
	})
	return w.Flush()
}
