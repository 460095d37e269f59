package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/git"
	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

var repoStatusLocalOnly bool

var repoStatusCmd = &cobra.Command{
	Use:   "repo-status",
	Short: "Probe the repository and persist the repo-enabled flag",
	Long: `Detects a git working tree and a push-capable remote (any configured
remote counts, regardless of host) and writes the outcome into the state
document. Checkpoint consults this flag for push behavior.
--set-local-only forces repo-enabled to false.`,
	RunE: runRepoStatus,
}

func init() {
	rootCmd.AddCommand(repoStatusCmd)
	repoStatusCmd.Flags().BoolVar(&repoStatusLocalOnly, "set-local-only", false,
		"disable pushes for this project regardless of remotes")
}

func runRepoStatus(cmd *cobra.Command, _ []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	client, err := openGit(root)
	if err != nil {
		return err
	}

	report, err := git.Probe(cmd.Context(), client, repoStatusLocalOnly)
	if err != nil {
		return err
	}

	_, err = openStore(root).Update(cmd.Context(), func(doc *core.StateDocument) error {
		doc.State.RepoEnabled = report.RepoEnabled
		return nil
	})
	if err != nil {
		return err
	}

	log.WithOperation("repo-status").Info("repository probed",
		"is_repo", report.IsRepo, "repo_enabled", report.RepoEnabled)
	return outputJSON(report)
}
