package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ResolvePath turns a possibly-relative, possibly-malformed candidate into
// an absolute path that exists on disk, searching a fixed ladder of
// locations under the workspace root (and under the actual process cwd when
// that differs from the root). When nothing on the ladder exists the
// cleaned candidate is returned unchanged: absence is a caller-policy
// concern, not an error here, because some helpers create files lazily.
func (r *Resolver) ResolvePath(candidate, root, specsDir string) string {
	cleaned := r.StripDuplicatePrefix(filepath.Clean(candidate), root)

	for _, p := range resolutionLadder(cleaned, root, specsDir) {
		if pathExists(p) {
			if p != cleaned {
				r.log.Debug("path resolved by search",
					zap.String("candidate", candidate), zap.String("resolved", p))
			}
			return p
		}
	}

	if cwd, err := os.Getwd(); err == nil && cwd != root {
		for _, p := range resolutionLadder(cleaned, cwd, specsDir) {
			if pathExists(p) {
				r.log.Debug("path resolved against process cwd",
					zap.String("candidate", candidate), zap.String("resolved", p))
				return p
			}
		}
	}

	return cleaned
}

// resolutionLadder lists the locations probed for a candidate, in order:
// the candidate itself, the candidate under base, its basename under
// base/specs, the full candidate under base/specs, and its final segment
// directly under base.
func resolutionLadder(cleaned, base, specsDir string) []string {
	specs := filepath.Join(base, specsDir)
	ladder := []string{
		cleaned,
		filepath.Join(base, cleaned),
		filepath.Join(specs, filepath.Base(cleaned)),
	}
	if rel, err := filepath.Rel(specs, cleaned); err != nil || strings.HasPrefix(rel, "..") {
		ladder = append(ladder, filepath.Join(specs, cleaned))
	}
	ladder = append(ladder, filepath.Join(base, filepath.Base(cleaned)))
	return ladder
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
