// Package feature binds the current branch to an on-disk feature directory
// and exposes the well-known document paths inside it. The binding key is
// the 3-digit numeric prefix, not the full name, so a branch can be renamed
// after creation without breaking addressing.
package feature

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/specsmith/cli/internal/gitops"
	"github.com/specsmith/cli/internal/numbering"
)

// OverrideEnv forces current-branch derivation to a fixed value, letting an
// agent pin the feature it is working on regardless of git state.
const OverrideEnv = "SPECSMITH_FEATURE"

// DefaultBranch is the terminal fallback of the current-branch chain.
const DefaultBranch = "main"

var branchPrefixPattern = regexp.MustCompile(`^(\d{3})-`)

// AmbiguousFeatureError reports two or more feature directories sharing a
// numeric prefix, a naming-convention violation the system refuses to
// resolve by guessing. Diagnostic: a fallback path is still returned.
type AmbiguousFeatureError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousFeatureError) Error() string {
	return fmt.Sprintf("feature prefix %q matches %d directories: %s",
		e.Prefix, len(e.Matches), strings.Join(e.Matches, ", "))
}

// Locator finds feature directories under a resolved workspace root.
type Locator struct {
	Root     string
	SpecsDir string         // directory name under Root, usually "specs"
	Git      *gitops.Client // nil when no version control is present
	log      *zap.Logger
}

// NewLocator builds a locator. git may be nil.
func NewLocator(root, specsDir string, git *gitops.Client, log *zap.Logger) *Locator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Locator{Root: root, SpecsDir: specsDir, Git: git, log: log}
}

// SpecsPath returns the absolute specs directory.
func (l *Locator) SpecsPath() string {
	return filepath.Join(l.Root, l.SpecsDir)
}

// Locate maps a branch-like name to its feature directory. The returned
// path is always usable; the error, when non-nil, is the diagnostic
// ambiguity report. A name without a numeric prefix falls back to exact
// directory naming. Zero prefix matches yield the not-yet-existing
// exact-name path so the caller can report "run creation first".
func (l *Locator) Locate(branch string) (string, error) {
	exact := filepath.Join(l.SpecsPath(), branch)

	prefix := branchPrefixPattern.FindString(branch)
	if prefix == "" {
		return exact, nil
	}

	matches := l.matchPrefix(prefix)
	switch len(matches) {
	case 0:
		return exact, nil
	case 1:
		return filepath.Join(l.SpecsPath(), matches[0]), nil
	default:
		err := &AmbiguousFeatureError{Prefix: strings.TrimSuffix(prefix, "-"), Matches: matches}
		l.log.Warn("ambiguous feature prefix, falling back to exact name",
			zap.String("branch", branch), zap.Strings("matches", matches))
		return exact, err
	}
}

// matchPrefix lists specs-directory entries whose name starts with the
// given "NNN-" prefix, sorted for deterministic reporting.
func (l *Locator) matchPrefix(prefix string) []string {
	entries, err := os.ReadDir(l.SpecsPath())
	if err != nil {
		return nil
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			matches = append(matches, e.Name())
		}
	}
	sort.Strings(matches)
	return matches
}

// CurrentBranch derives the branch the helpers should operate on:
// explicit override, then git, then the highest-numbered feature directory,
// then DefaultBranch. Never fails; each source simply passes when empty.
func (l *Locator) CurrentBranch(ctx context.Context) string {
	chain := []func() string{
		func() string { return os.Getenv(OverrideEnv) },
		func() string { return l.gitBranch(ctx) },
		l.highestNumberedDir,
	}
	for _, next := range chain {
		if branch := next(); branch != "" {
			return branch
		}
	}
	return DefaultBranch
}

func (l *Locator) gitBranch(ctx context.Context) string {
	if l.Git == nil || !l.Git.IsRepo(ctx) {
		return ""
	}
	branch, err := l.Git.CurrentBranch(ctx)
	if err != nil {
		l.log.Debug("current branch unavailable", zap.Error(err))
		return ""
	}
	return branch
}

// highestNumberedDir returns the full name of the specs entry carrying the
// highest numeric prefix, or "" when none exist.
func (l *Locator) highestNumberedDir() string {
	entries, err := os.ReadDir(l.SpecsPath())
	if err != nil {
		return ""
	}
	best, bestNum := "", 0
	for _, e := range entries {
		nums := numbering.ExtractPrefixes([]string{e.Name()})
		if len(nums) == 1 && nums[0] > bestNum {
			best, bestNum = e.Name(), nums[0]
		}
	}
	return best
}
