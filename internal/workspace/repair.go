package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CorruptedPathError reports a path containing the same non-trivial segment
// more than once, the symptom left behind when an agent assembles a path by
// concatenation. Diagnostic only: the caller still holds a usable path and
// decides whether to proceed.
type CorruptedPathError struct {
	Path    string
	Segment string
}

func (e *CorruptedPathError) Error() string {
	return fmt.Sprintf("workspace path %q repeats segment %q", e.Path, e.Segment)
}

// Validate checks a resolved workspace path for duplicated segments.
// Segments of three characters or fewer (separators, drive letters, "..")
// are too common to be meaningful and are ignored.
func Validate(path string) error {
	seen := make(map[string]int)
	for _, seg := range strings.Split(path, string(filepath.Separator)) {
		if len(seg) <= 3 {
			continue
		}
		seen[seg]++
		if seen[seg] > 1 {
			return &CorruptedPathError{Path: path, Segment: seg}
		}
	}
	return nil
}

// StripDuplicatePrefix repairs a caller-supplied path that has had the
// workspace root accidentally concatenated onto itself. Two independent
// matchers, tried in order; inputs matching neither shape pass through
// unchanged, and repaired output is a fixed point of the function.
func (r *Resolver) StripDuplicatePrefix(path, root string) string {
	if root == "" || root == string(filepath.Separator) || !strings.HasPrefix(path, root) {
		return path
	}

	if fixed, ok := stripDoubledRoot(path, root); ok {
		r.log.Info("repaired doubled workspace root",
			zap.String("from", path), zap.String("to", fixed))
		return fixed
	}
	if fixed, ok := stripHomeEcho(path, root); ok {
		r.log.Info("repaired duplicated home prefix",
			zap.String("from", path), zap.String("to", fixed))
		return fixed
	}
	return path
}

// stripDoubledRoot handles the contiguous doubling shape:
// /w/w/specs/001 with root /w becomes /w/specs/001. The second copy of the
// root must end on a segment boundary; /w/widgets merely shares a prefix
// with /w/w and is not a duplication.
func stripDoubledRoot(path, root string) (string, bool) {
	doubled := root + root
	if !strings.HasPrefix(path, doubled) {
		return "", false
	}
	rest := path[len(doubled):]
	if rest != "" && rest[0] != filepath.Separator {
		return "", false
	}
	return path[len(root):], true
}

// stripHomeEcho handles the shape where a complete home-rooted path had the
// root prepended onto it: after removing one leading root the remainder is
// itself an absolute-looking home path (Users/... or User/...) whose
// home-prefix portion already occurs earlier in the original string. The
// echoed copy is the real path; everything before it is discarded.
func stripHomeEcho(path, root string) (string, bool) {
	rem := strings.TrimPrefix(path, root)
	rem = strings.TrimPrefix(rem, string(filepath.Separator))
	if !strings.HasPrefix(rem, "Users/") && !strings.HasPrefix(rem, "User/") {
		return "", false
	}

	// The remainder's first two segments (e.g. "Users/alice") must appear a
	// second time in the original for this to be duplication rather than a
	// project that genuinely contains a Users directory.
	segs := strings.SplitN(rem, "/", 3)
	if len(segs) < 2 {
		return "", false
	}
	marker := segs[0] + "/" + segs[1]
	echoAt := strings.Index(path, rem)
	if echoAt <= 0 || !strings.Contains(path[:echoAt], marker) {
		return "", false
	}
	return string(filepath.Separator) + rem, true
}
