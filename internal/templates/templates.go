// Package templates instantiates the markdown documents the helpers
// scaffold. Defaults are embedded in the binary so a fresh checkout needs no
// template installation; a project can override any of them by dropping a
// file of the same name into its templates directory.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed defaults/*.md
var defaultFS embed.FS

// Known template names, each mapping to defaults/<name>.md.
const (
	Spec       = "spec"
	Plan       = "plan"
	Tasks      = "tasks"
	Design     = "design"
	Brainstorm = "brainstorm"
	Roast      = "roast"
)

// Vars are the placeholder values substituted into a template.
type Vars struct {
	Number      string // zero-padded feature number
	Name        string // NNN-slug
	Branch      string
	Description string
	Date        time.Time // zero value means now
}

// Render loads the named template, preferring overrideDir, and substitutes
// placeholders. Unknown placeholders are left in place so a project
// template can carry its own markers for later tooling.
func Render(overrideDir, name string, vars Vars) ([]byte, error) {
	raw, err := load(overrideDir, name)
	if err != nil {
		return nil, err
	}

	date := vars.Date
	if date.IsZero() {
		date = time.Now()
	}
	replacer := strings.NewReplacer(
		"{{FEATURE_NUMBER}}", vars.Number,
		"{{FEATURE_NAME}}", vars.Name,
		"{{BRANCH}}", vars.Branch,
		"{{DESCRIPTION}}", vars.Description,
		"{{DATE}}", date.Format("2006-01-02"),
	)
	return []byte(replacer.Replace(string(raw))), nil
}

// Install renders the named template into targetPath unless the file
// already exists. Reports whether a file was written; helpers re-run
// freely, so an existing document is left alone rather than clobbered.
func Install(overrideDir, name, targetPath string, vars Vars) (bool, error) {
	if _, err := os.Stat(targetPath); err == nil {
		return false, nil
	}

	content, err := Render(overrideDir, name, vars)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return false, fmt.Errorf("create document directory: %w", err)
	}
	if err := os.WriteFile(targetPath, content, 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", targetPath, err)
	}
	return true, nil
}

// load reads the template body, project override first.
func load(overrideDir, name string) ([]byte, error) {
	file := name + ".md"
	if overrideDir != "" {
		if data, err := os.ReadFile(filepath.Join(overrideDir, file)); err == nil {
			return data, nil
		}
	}
	data, err := defaultFS.ReadFile("defaults/" + file)
	if err != nil {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	return data, nil
}
