package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specsmith/cli/internal/feature"
	"github.com/specsmith/cli/internal/workspace"
)

// runSmith executes the root command with the given arguments, the way a
// helper invocation would.
func runSmith(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestNewThenSetupFlow_NoGit(t *testing.T) {
	root := t.TempDir()
	t.Setenv(workspace.PwdEnv, root)
	t.Setenv("SPECSMITH_GIT_COMMAND", filepath.Join(root, "no-such-git"))
	t.Setenv(feature.OverrideEnv, "")

	require.NoError(t, runSmith(t, "new", "add", "user", "authentication"))

	featureDir := filepath.Join(root, "specs", "001-add-user")
	require.DirExists(t, featureDir)
	require.FileExists(t, filepath.Join(featureDir, "spec.md"))

	// Without git, the override variable pins the current feature.
	t.Setenv(feature.OverrideEnv, "001-add-user")

	require.NoError(t, runSmith(t, "plan"))
	require.FileExists(t, filepath.Join(featureDir, "plan.md"))

	require.NoError(t, runSmith(t, "design"))
	require.FileExists(t, filepath.Join(featureDir, "design.md"))

	require.NoError(t, runSmith(t, "check", "--require-plan"))
	require.Error(t, runSmith(t, "check", "--require-tasks"),
		"check must fail while tasks.md is absent")

	require.NoError(t, runSmith(t, "tasks"))
	require.FileExists(t, filepath.Join(featureDir, "tasks.md"))
}

func TestNew_SecondFeatureGetsNextNumber(t *testing.T) {
	root := t.TempDir()
	t.Setenv(workspace.PwdEnv, root)
	t.Setenv("SPECSMITH_GIT_COMMAND", filepath.Join(root, "no-such-git"))
	t.Setenv(feature.OverrideEnv, "")

	require.NoError(t, runSmith(t, "new", "add", "user", "authentication"))
	require.NoError(t, runSmith(t, "new", "migrate billing records nightly"))

	require.DirExists(t, filepath.Join(root, "specs", "001-add-user"))
	require.DirExists(t, filepath.Join(root, "specs", "002-migrate-billing-records-nightly"))
}

func TestNew_ExplicitOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv(workspace.PwdEnv, root)
	t.Setenv("SPECSMITH_GIT_COMMAND", filepath.Join(root, "no-such-git"))

	require.NoError(t, runSmith(t, "new", "--number", "7", "--slug", "Custom Name!", "whatever description"))
	require.DirExists(t, filepath.Join(root, "specs", "007-custom-name"))

	// Reset flags for later tests sharing the package-level command state.
	newNumber = 0
	newSlug = ""
}

func TestNew_FailedBranchLeavesNoDirectory(t *testing.T) {
	root := t.TempDir()
	t.Setenv(workspace.PwdEnv, root)
	t.Setenv(feature.OverrideEnv, "")

	// A git that reports a work tree but refuses everything else, so branch
	// creation fails after allocation.
	fakeGit := filepath.Join(root, "fake-git")
	script := "#!/bin/sh\ncase \"$*\" in\n*is-inside-work-tree*) echo true ;;\n*) exit 1 ;;\nesac\n"
	require.NoError(t, os.WriteFile(fakeGit, []byte(script), 0755))
	t.Setenv("SPECSMITH_GIT_COMMAND", fakeGit)

	require.Error(t, runSmith(t, "new", "add", "user", "authentication"))
	require.NoDirExists(t, filepath.Join(root, "specs", "001-add-user"),
		"failed branch creation must not leave a feature directory behind")

	// With the orphan absent, a retry still gets number 001.
	require.NoError(t, runSmith(t, "new", "--no-branch", "add", "user", "authentication"))
	require.DirExists(t, filepath.Join(root, "specs", "001-add-user"))

	newNoBranch = false
}

func TestSetup_FailsWithoutFeatureDirectory(t *testing.T) {
	root := t.TempDir()
	t.Setenv(workspace.PwdEnv, root)
	t.Setenv("SPECSMITH_GIT_COMMAND", filepath.Join(root, "no-such-git"))
	t.Setenv(feature.OverrideEnv, "009-nonexistent")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "specs"), 0755))

	err := runSmith(t, "plan")
	require.Error(t, err)
	require.Contains(t, err.Error(), "run 'smith new' first")
}
