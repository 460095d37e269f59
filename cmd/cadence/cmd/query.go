package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [term]",
	Short: "Fuzzy-search workflow items",
	Long:  "Ranks plan items against the given term. Without a term, lists every item.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Output as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	doc, err := openStore(root).Load(cmd.Context())
	if err != nil {
		return err
	}

	term := ""
	if len(args) == 1 {
		term = args[0]
	}
	matches := core.QueryItems(doc, term)

	if queryJSON {
		return outputJSON(matches)
	}

	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSTATUS\tTITLE")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Item.ID, m.Item.Kind, m.Item.Status, m.Item.Title)
	}
	return w.Flush()
}
