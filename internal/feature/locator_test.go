package feature

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/specsmith/cli/internal/numbering"
	"github.com/specsmith/cli/internal/slug"
)

func setupSpecs(t *testing.T, dirs ...string) *Locator {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, "specs", d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return NewLocator(root, "specs", nil, zap.NewNop())
}

func TestLocate_PrefixMatchBeatsSuffixDrift(t *testing.T) {
	l := setupSpecs(t, "003-login")

	// Branch was renamed after creation; the numeric prefix still binds.
	dir, err := l.Locate("003-auth-rework")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	want := filepath.Join(l.SpecsPath(), "003-login")
	if dir != want {
		t.Errorf("Locate = %q, want %q", dir, want)
	}
}

func TestLocate_ZeroMatchesReturnsExactFallback(t *testing.T) {
	l := setupSpecs(t)

	dir, err := l.Locate("004-add-dashboard")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	want := filepath.Join(l.SpecsPath(), "004-add-dashboard")
	if dir != want {
		t.Errorf("Locate = %q, want not-yet-existing %q", dir, want)
	}
}

func TestLocate_AmbiguousPrefixRefusesToGuess(t *testing.T) {
	l := setupSpecs(t, "003-login", "003-other")

	dir, err := l.Locate("003-login")
	var amb *AmbiguousFeatureError
	if !errors.As(err, &amb) {
		t.Fatalf("Locate error = %v, want AmbiguousFeatureError", err)
	}
	if len(amb.Matches) != 2 {
		t.Errorf("Matches = %v, want both colliding directories", amb.Matches)
	}
	// Fallback is the exact-name path, not either colliding directory
	// picked arbitrarily.
	want := filepath.Join(l.SpecsPath(), "003-login")
	if dir != want {
		t.Errorf("fallback = %q, want exact-name path %q", dir, want)
	}
}

func TestLocate_NonNumberedBranchUsesExactName(t *testing.T) {
	l := setupSpecs(t, "legacy-idea")

	dir, err := l.Locate("legacy-idea")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	want := filepath.Join(l.SpecsPath(), "legacy-idea")
	if dir != want {
		t.Errorf("Locate = %q, want %q", dir, want)
	}
}

func TestCurrentBranch_OverrideWins(t *testing.T) {
	l := setupSpecs(t, "009-highest")
	t.Setenv(OverrideEnv, "002-pinned")

	if got := l.CurrentBranch(context.Background()); got != "002-pinned" {
		t.Errorf("CurrentBranch = %q, want override %q", got, "002-pinned")
	}
}

func TestCurrentBranch_ScansSpecsWithoutGit(t *testing.T) {
	l := setupSpecs(t, "001-first", "012-latest", "007-middle", "junk")
	t.Setenv(OverrideEnv, "")

	if got := l.CurrentBranch(context.Background()); got != "012-latest" {
		t.Errorf("CurrentBranch = %q, want highest-numbered %q", got, "012-latest")
	}
}

func TestCurrentBranch_FallsBackToMain(t *testing.T) {
	l := setupSpecs(t)
	t.Setenv(OverrideEnv, "")

	if got := l.CurrentBranch(context.Background()); got != DefaultBranch {
		t.Errorf("CurrentBranch = %q, want %q", got, DefaultBranch)
	}
}

func TestPaths(t *testing.T) {
	l := setupSpecs(t, "005-add-api")
	t.Setenv(OverrideEnv, "005-add-api")

	p, err := l.Paths(context.Background())
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}

	dir := filepath.Join(l.SpecsPath(), "005-add-api")
	checks := map[string]string{
		"FeatureDir": p.FeatureDir,
		"Spec":       p.Spec,
		"Plan":       p.Plan,
		"Tasks":      p.Tasks,
		"Research":   p.Research,
		"DataModel":  p.DataModel,
		"Design":     p.Design,
		"Quickstart": p.Quickstart,
		"Contracts":  p.Contracts,
	}
	wants := map[string]string{
		"FeatureDir": dir,
		"Spec":       filepath.Join(dir, "spec.md"),
		"Plan":       filepath.Join(dir, "plan.md"),
		"Tasks":      filepath.Join(dir, "tasks.md"),
		"Research":   filepath.Join(dir, "research.md"),
		"DataModel":  filepath.Join(dir, "data-model.md"),
		"Design":     filepath.Join(dir, "design.md"),
		"Quickstart": filepath.Join(dir, "quickstart.md"),
		"Contracts":  filepath.Join(dir, "contracts"),
	}
	for field, got := range checks {
		if got != wants[field] {
			t.Errorf("%s = %q, want %q", field, got, wants[field])
		}
	}
	if p.Branch != "005-add-api" {
		t.Errorf("Branch = %q, want %q", p.Branch, "005-add-api")
	}
	if p.HasGit {
		t.Error("HasGit = true without a git client")
	}
}

// Round-trip: a directory created as NNN-<generated slug> is locatable
// afterward using that exact name as the branch.
func TestRoundTrip_CreateThenLocate(t *testing.T) {
	l := setupSpecs(t)

	descriptions := []string{
		"add user authentication for the dashboard",
		"migrate billing records between regions",
		"!!!",
	}
	for i, desc := range descriptions {
		name := numbering.Format(i+1) + "-" + slug.Generate(desc, 4)
		name = slug.TruncateForRef(name)
		dir := filepath.Join(l.SpecsPath(), name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}

		located, err := l.Locate(name)
		if err != nil {
			t.Fatalf("Locate(%q): %v", name, err)
		}
		if located != dir {
			t.Errorf("Locate(%q) = %q, want %q", name, located, dir)
		}
	}
}
