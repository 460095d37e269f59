package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

var setModeCmd = &cobra.Command{
	Use:   "set-mode <unknown|greenfield|brownfield>",
	Short: "Set the project mode and recompute overrides",
	Long: `Sets project-mode and reconciles the plan. Mode overrides are
reapplied immediately: switching modes un-skips tasks the previous mode
had skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetMode,
}

func init() {
	rootCmd.AddCommand(setModeCmd)
}

func runSetMode(cmd *cobra.Command, args []string) error {
	mode := core.ProjectMode(args[0])
	switch mode {
	case core.ModeUnknown, core.ModeGreenfield, core.ModeBrownfield:
	default:
		return core.ErrValidation(core.CodeInvalidStatus,
			fmt.Sprintf("unsupported project mode %q", args[0]))
	}

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	doc, err := openStore(root).Update(cmd.Context(), func(doc *core.StateDocument) error {
		doc.State.ProjectMode = mode
		return nil
	})
	if err != nil {
		return err
	}

	log.WithOperation("set-mode").Info("project mode updated", "mode", mode)
	res := core.Resolve(doc)
	return outputJSON(statusPayload{
		NextItem: res.NextItem,
		Route:    res.Route,
		Summary:  res.Summary,
	})
}
