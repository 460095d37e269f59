package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

var (
	assertSkill         string
	assertAllowComplete bool
)

var assertRouteCmd = &cobra.Command{
	Use:   "assert-route",
	Short: "Verify that a skill is the one the workflow expects next",
	Long: `Recomputes the route and exits 0 only when the requested skill matches
it. Exactly one route is legal at any moment; on mismatch the command
exits non-zero with RouteMismatch:<expected>:<requested>.`,
	RunE: runAssertRoute,
}

func init() {
	rootCmd.AddCommand(assertRouteCmd)
	assertRouteCmd.Flags().StringVar(&assertSkill, "skill", "", "requesting skill name (required)")
	assertRouteCmd.Flags().BoolVar(&assertAllowComplete, "allow-complete", false,
		"treat a fully complete workflow as a match")
	_ = assertRouteCmd.MarkFlagRequired("skill")
}

func runAssertRoute(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	doc, err := openStore(root).Load(cmd.Context())
	if err != nil {
		return err
	}

	res, err := core.AssertRoute(doc, assertSkill, assertAllowComplete)
	if err != nil {
		return err
	}

	if res.Complete() {
		fmt.Println("route ok: workflow complete")
		return nil
	}
	fmt.Printf("route ok: %s -> %s\n", assertSkill, res.NextItem.ID)
	return nil
}
