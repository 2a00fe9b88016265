// Package gitops shells out to git for branch bookkeeping. Git is an
// optional collaborator: every call is bounded by a short timeout, and the
// listing operations degrade to empty results instead of failing so that
// addressing keeps working in bare directories.
package gitops

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BranchNamePattern is the shape required for branches this tool creates:
// a 3-digit feature number, a hyphen, and a slug.
var BranchNamePattern = regexp.MustCompile(`^\d{3}-[a-z0-9][a-z0-9-]*$`)

// runner executes one external command and returns its combined stdout.
// Swapped out by tests.
type runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Client invokes git inside a fixed working directory.
type Client struct {
	dir     string
	command string
	timeout time.Duration
	run     runner
	log     *zap.Logger
}

// NewClient builds a git client rooted at dir. A zero timeout falls back
// to 3 seconds.
func NewClient(dir, command string, timeout time.Duration, log *zap.Logger) *Client {
	if command == "" {
		command = "git"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{dir: dir, command: command, timeout: timeout, run: execRunner, log: log}
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.run(ctx, c.dir, c.command, args...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is inside a git work tree.
func (c *Client) IsRepo(ctx context.Context) bool {
	out, err := c.git(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// LocalBranches lists local branch names. Advisory: failures and timeouts
// yield an empty list.
func (c *Client) LocalBranches(ctx context.Context) []string {
	out, err := c.git(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		c.log.Debug("local branch listing unavailable", zap.Error(err))
		return nil
	}
	return splitLines(out)
}

// RemoteBranches lists remote branch names with the remote portion removed
// (origin/003-auth becomes 003-auth). Advisory like LocalBranches.
func (c *Client) RemoteBranches(ctx context.Context) []string {
	out, err := c.git(ctx, "for-each-ref", "--format=%(refname:short)", "refs/remotes")
	if err != nil {
		c.log.Debug("remote branch listing unavailable", zap.Error(err))
		return nil
	}
	var names []string
	for _, ref := range splitLines(out) {
		if strings.HasSuffix(ref, "/HEAD") {
			continue
		}
		if idx := strings.Index(ref, "/"); idx >= 0 {
			ref = ref[idx+1:]
		}
		names = append(names, ref)
	}
	return names
}

// BranchExists reports whether a local branch with the given name exists.
func (c *Client) BranchExists(ctx context.Context, name string) bool {
	_, err := c.git(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// CreateBranch creates and checks out a feature branch. The name must match
// BranchNamePattern, and creation fails if the branch already exists.
func (c *Client) CreateBranch(ctx context.Context, name string) error {
	if !BranchNamePattern.MatchString(name) {
		return fmt.Errorf("branch name %q does not match NNN-slug", name)
	}
	if c.BranchExists(ctx, name) {
		return fmt.Errorf("branch %q already exists", name)
	}
	if _, err := c.git(ctx, "checkout", "-b", name); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
