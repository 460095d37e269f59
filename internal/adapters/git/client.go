package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Client wraps git CLI operations for a single repository.
type Client struct {
	repoPath string
	timeout  time.Duration
}

// NewClient creates a new git client rooted at repoPath. The path does not
// have to be a repository; use IsWorkTree to probe.
func NewClient(repoPath string) (*Client, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return &Client{
		repoPath: absPath,
		timeout:  30 * time.Second,
	}, nil
}

// WithTimeout sets the command timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// RepoPath returns the repository path.
func (c *Client) RepoPath() string {
	return c.repoPath
}

// run executes a git command.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s: timed out after %s", strings.Join(args, " "), c.timeout)
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "),
			strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsWorkTree reports whether repoPath is inside a git working tree.
func (c *Client) IsWorkTree(ctx context.Context) bool {
	out, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// TopLevel returns the root of the working tree.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--show-toplevel")
}

// ChangedPath is one entry from git status.
type ChangedPath struct {
	Status string // two-character XY code
	Path   string
}

// ChangedPaths lists every modified, staged, and untracked path in the
// working tree. Untracked directories are expanded to individual files and
// ignored entries are dropped. Renames report the new path.
func (c *Client) ChangedPaths(ctx context.Context) ([]ChangedPath, error) {
	out, err := c.run(ctx, "-c", "core.quotepath=false",
		"status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// parsePorcelain parses porcelain v1 status output.
func parsePorcelain(out string) []ChangedPath {
	var changes []ChangedPath
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		status := line[:2]
		if status == "!!" {
			continue
		}
		path := line[3:]
		// Renames and copies are "old -> new"; the new path is what exists.
		if status[0] == 'R' || status[0] == 'C' {
			if idx := strings.Index(path, " -> "); idx >= 0 {
				path = path[idx+4:]
			}
		}
		path = strings.Trim(path, `"`)
		if path == "" {
			continue
		}
		changes = append(changes, ChangedPath{Status: status, Path: path})
	}
	return changes
}

// StagedFiles lists paths currently staged in the index.
func (c *Client) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Add stages the given paths.
func (c *Client) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	_, err := c.run(ctx, args...)
	return err
}

// Commit creates a commit and returns its hash.
func (c *Client) Commit(ctx context.Context, message string) (string, error) {
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return "", err
	}
	return c.run(ctx, "rev-parse", "HEAD")
}

// CurrentBranch returns the current branch name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Remotes lists configured remote names.
func (c *Client) Remotes(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "remote")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// RemoteURL returns the URL of the remote.
func (c *Client) RemoteURL(ctx context.Context, remote string) (string, error) {
	if remote == "" {
		remote = "origin"
	}
	return c.run(ctx, "remote", "get-url", remote)
}

// HasUpstream reports whether the current branch tracks an upstream.
func (c *Client) HasUpstream(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	return err == nil
}

// Push pushes the current branch. Without an upstream the branch is pushed
// to the given remote with tracking established.
func (c *Client) Push(ctx context.Context, remote string) error {
	if c.HasUpstream(ctx) {
		_, err := c.run(ctx, "push")
		return err
	}
	branch, err := c.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "push", "-u", remote, branch)
	return err
}

func splitLines(out string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
