package checkpoint

import (
	"context"

	"github.com/hugo-lorenzo-mato/cadence/internal/adapters/git"
	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

// Git is the subset of repository operations a finalize run needs.
type Git interface {
	ChangedPaths(ctx context.Context) ([]git.ChangedPath, error)
	StagedFiles(ctx context.Context) ([]string, error)
	Add(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) (string, error)
	Push(ctx context.Context, remote string) error
}

// Options configures a finalize run.
type Options struct {
	CommitType        string
	MaxFilesPerCommit int
	SubjectMaxLength  int
	DefaultRemote     string
	GroupRules        []GroupRule
}

// DefaultOptions returns the built-in checkpoint configuration.
func DefaultOptions() Options {
	return Options{
		CommitType:        "cadence",
		MaxFilesPerCommit: 4,
		SubjectMaxLength:  72,
		DefaultRemote:     "origin",
		GroupRules:        DefaultGroupRules(),
	}
}

// Batch is one planned commit.
type Batch struct {
	Group     string   `json:"group"`
	Tag       string   `json:"tag"`
	Paths     []string `json:"paths"`
	Message   string   `json:"message"`
	Committed bool     `json:"committed"`
	Hash      string   `json:"hash,omitempty"`
}

// Result reports the outcome of a finalize run. PushError is carried
// separately from commit failures: the commits it follows all stand.
type Result struct {
	Status    string  `json:"status"` // "ok" or "no_changes"
	Batches   []Batch `json:"batches"`
	Pushed    bool    `json:"pushed"`
	PushError string  `json:"push_error,omitempty"`
}

// StatusOK and StatusNoChanges are the two success statuses.
const (
	StatusOK        = "ok"
	StatusNoChanges = "no_changes"
)

// Finalizer turns a working-tree diff into grouped, size-bounded commits.
type Finalizer struct {
	git  Git
	opts Options
}

// NewFinalizer creates a finalizer.
func NewFinalizer(g Git, opts Options) *Finalizer {
	if opts.CommitType == "" {
		opts.CommitType = "cadence"
	}
	if opts.MaxFilesPerCommit <= 0 {
		opts.MaxFilesPerCommit = 4
	}
	if len(opts.GroupRules) == 0 {
		opts.GroupRules = DefaultGroupRules()
	}
	return &Finalizer{git: g, opts: opts}
}

// Run executes one checkpoint: diff, classify, batch, commit, and push.
// Commits are sequential and stop on the first failure; earlier commits
// are kept. The returned result is valid even when err is non-nil and
// records exactly which batches landed.
func (f *Finalizer) Run(ctx context.Context, scope, checkpoint string, filters []string, repoEnabled bool) (Result, error) {
	result := Result{Status: StatusNoChanges}

	staged, err := f.git.StagedFiles(ctx)
	if err != nil {
		return result, core.ErrRepoProbe(err.Error())
	}
	if len(staged) > 0 {
		return result, core.ErrStagedChanges(len(staged))
	}

	changed, err := f.git.ChangedPaths(ctx)
	if err != nil {
		return result, core.ErrRepoProbe(err.Error())
	}
	paths := make([]string, 0, len(changed))
	for _, c := range changed {
		paths = append(paths, c.Path)
	}
	paths = FilterPaths(NormalizePaths(paths), filters)
	if len(paths) == 0 {
		return result, nil
	}

	result.Batches = f.plan(scope, checkpoint, paths)
	result.Status = StatusOK

	for i := range result.Batches {
		batch := &result.Batches[i]
		if err := f.git.Add(ctx, batch.Paths...); err != nil {
			return result, core.ErrCheckpoint(i+1, err.Error())
		}
		hash, err := f.git.Commit(ctx, batch.Message)
		if err != nil {
			return result, core.ErrCheckpoint(i+1, err.Error())
		}
		batch.Committed = true
		batch.Hash = hash
	}

	if repoEnabled {
		if err := f.git.Push(ctx, f.opts.DefaultRemote); err != nil {
			result.PushError = err.Error()
		} else {
			result.Pushed = true
		}
	}
	return result, nil
}

// plan classifies paths and chunks each group into bounded batches. Group
// order follows the rule order, paths are already sorted, so identical
// diffs always plan identical batches.
func (f *Finalizer) plan(scope, checkpoint string, paths []string) []Batch {
	grouped := make(map[string][]string)
	for _, p := range paths {
		name := Classify(p, f.opts.GroupRules)
		grouped[name] = append(grouped[name], p)
	}

	order := make([]string, 0, len(grouped))
	ordered := make(map[string]bool, len(grouped))
	for _, rule := range f.opts.GroupRules {
		if _, ok := grouped[rule.Name]; ok && !ordered[rule.Name] {
			order = append(order, rule.Name)
			ordered[rule.Name] = true
		}
	}
	// A rule may claim the fallback name itself; the group batches once
	// either way.
	if _, ok := grouped[SourceGroup]; ok && !ordered[SourceGroup] {
		order = append(order, SourceGroup)
	}

	var batches []Batch
	for _, name := range order {
		chunks := chunk(grouped[name], f.opts.MaxFilesPerCommit)
		for i, files := range chunks {
			tag := batchTag(name, i+1, len(chunks))
			batches = append(batches, Batch{
				Group:   name,
				Tag:     tag,
				Paths:   files,
				Message: BuildSubject(f.opts.CommitType, scope, checkpoint, tag, f.opts.SubjectMaxLength),
			})
		}
	}
	return batches
}

func chunk(paths []string, size int) [][]string {
	var out [][]string
	for len(paths) > size {
		out = append(out, paths[:size])
		paths = paths[size:]
	}
	if len(paths) > 0 {
		out = append(out, paths)
	}
	return out
}
