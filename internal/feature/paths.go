package feature

import (
	"context"
	"path/filepath"
)

// Well-known document names inside a feature directory.
const (
	SpecFile       = "spec.md"
	PlanFile       = "plan.md"
	TasksFile      = "tasks.md"
	ResearchFile   = "research.md"
	DataModelFile  = "data-model.md"
	DesignFile     = "design.md"
	QuickstartFile = "quickstart.md"
	ContractsDir   = "contracts"
)

// Paths is the outward-facing addressing contract: every well-known
// location of the current feature as an absolute string. No existence
// checks are performed; missing-file policy belongs to each calling helper.
type Paths struct {
	Root       string `json:"root"`
	Branch     string `json:"branch"`
	HasGit     bool   `json:"has_git"`
	FeatureDir string `json:"feature_dir"`
	Spec       string `json:"spec"`
	Plan       string `json:"plan"`
	Tasks      string `json:"tasks"`
	Research   string `json:"research"`
	DataModel  string `json:"data_model"`
	Design     string `json:"design"`
	Quickstart string `json:"quickstart"`
	Contracts  string `json:"contracts"`
}

// Paths resolves the current branch, locates its feature directory, and
// derives the member paths. The returned error is the diagnostic ambiguity
// report from Locate; the Paths value is populated either way.
func (l *Locator) Paths(ctx context.Context) (*Paths, error) {
	branch := l.CurrentBranch(ctx)
	dir, diag := l.Locate(branch)

	hasGit := false
	if l.Git != nil {
		hasGit = l.Git.IsRepo(ctx)
	}

	return &Paths{
		Root:       l.Root,
		Branch:     branch,
		HasGit:     hasGit,
		FeatureDir: dir,
		Spec:       filepath.Join(dir, SpecFile),
		Plan:       filepath.Join(dir, PlanFile),
		Tasks:      filepath.Join(dir, TasksFile),
		Research:   filepath.Join(dir, ResearchFile),
		DataModel:  filepath.Join(dir, DataModelFile),
		Design:     filepath.Join(dir, DesignFile),
		Quickstart: filepath.Join(dir, QuickstartFile),
		Contracts:  filepath.Join(dir, ContractsDir),
	}, diag
}
