package git

import (
	"context"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

// Report is the outcome of a repository probe.
type Report struct {
	IsRepo      bool     `json:"is_repo"`
	Remotes     []string `json:"remotes,omitempty"`
	Branch      string   `json:"branch,omitempty"`
	RepoEnabled bool     `json:"repo_enabled"`
}

// Probe inspects the project directory and decides whether checkpoint
// pushes are possible. Any configured remote counts as push-capable;
// the hosting provider is irrelevant. localOnly forces the repo to be
// treated as local regardless of findings.
func Probe(ctx context.Context, client *Client, localOnly bool) (Report, error) {
	report := Report{}
	if !client.IsWorkTree(ctx) {
		return report, nil
	}
	report.IsRepo = true

	remotes, err := client.Remotes(ctx)
	if err != nil {
		return report, core.ErrRepoProbe(err.Error())
	}
	report.Remotes = remotes

	if branch, err := client.CurrentBranch(ctx); err == nil {
		report.Branch = branch
	}

	report.RepoEnabled = len(remotes) > 0 && !localOnly
	return report, nil
}
