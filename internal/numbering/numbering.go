// Package numbering allocates feature numbers. The next number is one past
// the highest 3-digit prefix observed across remote branches, local
// branches, and specs-directory entries; only the maximum matters, so the
// result is independent of source ordering and of any interleaving between
// sources.
package numbering

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/specsmith/cli/internal/gitops"
)

var prefixPattern = regexp.MustCompile(`^(\d{3})-`)

// Source yields the numeric prefixes one bookkeeping source knows about.
// A failing source yields nothing; it never aborts allocation.
type Source func(ctx context.Context) []int

// Allocator merges prefix observations from git and the specs directory.
type Allocator struct {
	sources []Source
	log     *zap.Logger
}

// New builds an allocator over the standard three sources. A nil git client
// (no version control present) leaves only the directory source.
func New(git *gitops.Client, specsDir string, log *zap.Logger) *Allocator {
	if log == nil {
		log = zap.NewNop()
	}
	var sources []Source
	if git != nil {
		sources = append(sources,
			func(ctx context.Context) []int { return ExtractPrefixes(git.RemoteBranches(ctx)) },
			func(ctx context.Context) []int { return ExtractPrefixes(git.LocalBranches(ctx)) },
		)
	}
	sources = append(sources, DirSource(specsDir))
	return &Allocator{sources: sources, log: log}
}

// NewFromSources builds an allocator over explicit sources. Used by tests
// to pin down ordering properties.
func NewFromSources(log *zap.Logger, sources ...Source) *Allocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Allocator{sources: sources, log: log}
}

// Next returns the lowest unused number greater than every observed one:
// max+1, or 1 when nothing has been observed anywhere.
func (a *Allocator) Next(ctx context.Context) int {
	highest := 0
	for _, src := range a.sources {
		for _, n := range src(ctx) {
			if n > highest {
				highest = n
			}
		}
	}
	a.log.Debug("allocated feature number", zap.Int("number", highest+1))
	return highest + 1
}

// Format renders a feature number zero-padded to exactly 3 digits.
func Format(n int) string {
	return fmt.Sprintf("%03d", n)
}

// ExtractPrefixes pulls the 3-digit numeric prefixes out of a list of
// branch or directory names. Names without a NNN- prefix are ignored.
func ExtractPrefixes(names []string) []int {
	var nums []int
	for _, name := range names {
		if m := prefixPattern.FindStringSubmatch(name); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				nums = append(nums, n)
			}
		}
	}
	return nums
}

// DirSource observes prefixes from entry names directly under specsDir.
// A missing or unreadable directory contributes nothing.
func DirSource(specsDir string) Source {
	return func(ctx context.Context) []int {
		entries, err := os.ReadDir(specsDir)
		if err != nil {
			return nil
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return ExtractPrefixes(names)
	}
}
