package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testVars = Vars{
	Number:      "003",
	Name:        "003-add-user-auth",
	Branch:      "003-add-user-auth",
	Description: "add user authentication",
	Date:        time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
}

func TestRender_EmbeddedDefaults(t *testing.T) {
	for _, name := range []string{Spec, Plan, Tasks, Design, Brainstorm, Roast} {
		t.Run(name, func(t *testing.T) {
			out, err := Render("", name, testVars)
			if err != nil {
				t.Fatalf("Render(%q): %v", name, err)
			}
			s := string(out)
			if strings.Contains(s, "{{FEATURE_NAME}}") || strings.Contains(s, "{{DATE}}") {
				t.Errorf("unsubstituted placeholder in %q output", name)
			}
			if !strings.Contains(s, "003-add-user-auth") {
				t.Errorf("feature name missing from %q output", name)
			}
		})
	}
}

func TestRender_DateSubstitution(t *testing.T) {
	out, err := Render("", Spec, testVars)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "2026-08-23") {
		t.Errorf("date not rendered: %s", out)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("", "retrospective", testVars)
	if err == nil {
		t.Fatal("Render of unknown template succeeded")
	}
}

func TestRender_ProjectOverrideWins(t *testing.T) {
	dir := t.TempDir()
	custom := "# Custom {{FEATURE_NAME}} spec\n"
	if err := os.WriteFile(filepath.Join(dir, "spec.md"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := Render(dir, Spec, testVars)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), "# Custom 003-add-user-auth spec") {
		t.Errorf("override not used: %s", out)
	}
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "feature", "spec.md")

	written, err := Install("", Spec, target, testVars)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !written {
		t.Fatal("Install reported nothing written")
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("target missing: %v", err)
	}

	// Second install must not clobber the existing document.
	if err := os.WriteFile(target, []byte("edited by hand"), 0644); err != nil {
		t.Fatal(err)
	}
	written, err = Install("", Spec, target, testVars)
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if written {
		t.Error("second Install overwrote an existing document")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "edited by hand" {
		t.Errorf("document clobbered: %q", data)
	}
}
