package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/git"
	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/history"
	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/state"
	"github.com/hugo-lorenzo-mato/cadence/internal/checkpoint"
	"github.com/hugo-lorenzo-mato/cadence/internal/project"
)

// resolveRoot locates the project root for the current invocation.
func resolveRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return project.Resolve(projectFlag, cwd)
}

// openStore builds the state store for a project root.
func openStore(root string) *state.Store {
	return state.NewStore(root, state.WithLockTTL(cfg.State.LockTTLDuration()))
}

// openGit builds a git client for a project root.
func openGit(root string) (*git.Client, error) {
	client, err := git.NewClient(root)
	if err != nil {
		return nil, err
	}
	return client.WithTimeout(cfg.Git.TimeoutDuration()), nil
}

// withJournal runs fn against the audit journal when history is enabled.
// Journal failures are logged and swallowed: the journal observes
// operations, it never gates them.
func withJournal(root string, fn func(*history.Journal) error) {
	if cfg == nil || !cfg.History.Enabled {
		return
	}
	j, err := history.Open(filepath.Join(root, filepath.FromSlash(cfg.History.Path)))
	if err != nil {
		log.Warn("opening history journal", "error", err)
		return
	}
	defer j.Close()
	if err := fn(j); err != nil {
		log.Warn("recording history", "error", err)
	}
}

// checkpointOptions maps config onto finalizer options.
func checkpointOptions() checkpoint.Options {
	opts := checkpoint.Options{
		CommitType:        cfg.Checkpoint.CommitType,
		MaxFilesPerCommit: cfg.Checkpoint.MaxFilesPerCommit,
		SubjectMaxLength:  cfg.Checkpoint.SubjectMaxLength,
		DefaultRemote:     cfg.Checkpoint.DefaultRemote,
	}
	for _, g := range cfg.Checkpoint.Groups {
		opts.GroupRules = append(opts.GroupRules, checkpoint.GroupRule{
			Name:     g.Name,
			Patterns: g.Patterns,
		})
	}
	return opts
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
