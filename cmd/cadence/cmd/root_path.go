package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootPathJSON bool

var rootPathCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the resolved project root",
	Long: `Resolves the project root: the explicit --project-root flag, the
closest ancestor containing .cadence/, or a .cadence-root hint file.
Exits non-zero with RootNotFound when nothing matches.`,
	RunE: runRootPath,
}

func init() {
	rootCmd.AddCommand(rootPathCmd)
	rootPathCmd.Flags().BoolVar(&rootPathJSON, "json", false, "Output as JSON")
}

func runRootPath(_ *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	if rootPathJSON {
		return outputJSON(map[string]string{"root": root})
	}
	fmt.Println(root)
	return nil
}
