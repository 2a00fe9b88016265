package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specsmith/cli/internal/feature"
	"github.com/specsmith/cli/internal/formatter"
	"github.com/specsmith/cli/internal/workspace"
)

var pathsCmd = &cobra.Command{
	Use:   "paths [file...]",
	Short: "Print every well-known path of the current feature",
	Long: `Resolve the workspace root and current feature, then print the full
set of well-known document paths as absolute strings. No existence checks
are performed; consumers decide whether a missing file matters.

Extra arguments are resolved individually against the workspace (useful for
repairing paths an agent has mangled) and printed one per line.`,
	RunE: runPaths,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	loc, err := newLocator()
	if err != nil {
		return err
	}

	p, diag := loc.Paths(context.Background())
	var amb *feature.AmbiguousFeatureError
	if errors.As(diag, &amb) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", amb)
	}

	if len(args) > 0 {
		resolver := workspace.NewResolver(logger)
		for _, candidate := range args {
			fmt.Println(resolver.ResolvePath(candidate, p.Root, cfg.SpecsDir))
		}
		return nil
	}

	return writePaths(p)
}

// writePaths renders the addressing contract in the configured format.
func writePaths(p *feature.Paths) error {
	switch cfg.Output {
	case "json":
		return formatter.WriteJSON(os.Stdout, p)
	case "shell":
		return formatter.WriteShellVars(os.Stdout, pathVars(p))
	default:
		tbl := formatter.NewTable(os.Stdout, "KEY", "PATH")
		for _, v := range pathVars(p) {
			tbl.AddRow(v.Key, v.Value)
		}
		return tbl.Render()
	}
}

func pathVars(p *feature.Paths) []formatter.Var {
	return []formatter.Var{
		{Key: "REPO_ROOT", Value: p.Root},
		{Key: "CURRENT_BRANCH", Value: p.Branch},
		{Key: "HAS_GIT", Value: fmt.Sprintf("%t", p.HasGit)},
		{Key: "FEATURE_DIR", Value: p.FeatureDir},
		{Key: "FEATURE_SPEC", Value: p.Spec},
		{Key: "IMPL_PLAN", Value: p.Plan},
		{Key: "TASKS", Value: p.Tasks},
		{Key: "RESEARCH", Value: p.Research},
		{Key: "DATA_MODEL", Value: p.DataModel},
		{Key: "DESIGN", Value: p.Design},
		{Key: "QUICKSTART", Value: p.Quickstart},
		{Key: "CONTRACTS_DIR", Value: p.Contracts},
	}
}
