package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/specsmith/cli/internal/feature"
	"github.com/specsmith/cli/internal/formatter"
	"github.com/specsmith/cli/internal/gitops"
	"github.com/specsmith/cli/internal/numbering"
	"github.com/specsmith/cli/internal/slug"
	"github.com/specsmith/cli/internal/templates"
	"github.com/specsmith/cli/internal/workspace"
)

var (
	newNumber   int
	newSlug     string
	newNoBranch bool
)

var newCmd = &cobra.Command{
	Use:   "new <description...>",
	Short: "Create a numbered feature (slug, directory, branch, spec)",
	Long: `Allocate the next feature number, derive a slug from the description,
create specs/NNN-slug/ with an initial spec document, and check out a
matching branch when git is available.

The number is one past the highest 3-digit prefix seen across remote
branches, local branches, and existing feature directories. Two concurrent
invocations can observe the same maximum and collide; re-run one of them
with --number to correct that manually.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().IntVar(&newNumber, "number", 0, "Use this feature number instead of allocating one (no collision check)")
	newCmd.Flags().StringVar(&newSlug, "slug", "", "Use this short name instead of deriving one from the description")
	newCmd.Flags().BoolVar(&newNoBranch, "no-branch", false, "Skip branch creation even when git is available")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")
	ctx := context.Background()

	resolver := workspace.NewResolver(logger)
	root, err := resolver.Resolve()
	if err != nil {
		return err
	}
	if err := workspace.Validate(root); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	git := gitops.NewClient(root, cfg.Git.Command, cfg.GitTimeout(), logger)
	hasGit := git.IsRepo(ctx)
	specsPath := filepath.Join(root, cfg.SpecsDir)

	num := newNumber
	if num <= 0 {
		allocGit := git
		if !hasGit {
			allocGit = nil
		}
		num = numbering.New(allocGit, specsPath, logger).Next(ctx)
	} else {
		logger.Debug("using explicit feature number", zap.Int("number", num))
	}

	name := newSlug
	if name != "" {
		name = slug.Clean(name)
	} else {
		name = slug.Generate(description, cfg.Slug.MaxWords)
	}
	if name == "" {
		name = slug.Fallback
	}

	branch := slug.TruncateForRef(numbering.Format(num) + "-" + name)
	featureDir := filepath.Join(specsPath, branch)

	if dryRun {
		fmt.Printf("[dry-run] Would create %s\n", featureDir)
		if hasGit && !newNoBranch {
			fmt.Printf("[dry-run] Would create branch %s\n", branch)
		}
		return nil
	}

	// Branch first, directory second: a failed checkout must not leave an
	// orphaned feature directory behind to inflate the next allocation.
	if hasGit && !newNoBranch {
		if err := git.CreateBranch(ctx, branch); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(os.Stderr, "No branch created; pin the feature with %s=%s\n", feature.OverrideEnv, branch)
	}

	if err := os.MkdirAll(featureDir, 0755); err != nil {
		return fmt.Errorf("create feature directory: %w", err)
	}

	specFile := filepath.Join(featureDir, feature.SpecFile)
	_, err = templates.Install(filepath.Join(root, cfg.TemplatesDir), templates.Spec, specFile, templates.Vars{
		Number:      numbering.Format(num),
		Name:        branch,
		Branch:      branch,
		Description: description,
	})
	if err != nil {
		return err
	}

	return writeNewResult(branch, num, featureDir, specFile)
}

func writeNewResult(branch string, num int, featureDir, specFile string) error {
	vars := []formatter.Var{
		{Key: "BRANCH_NAME", Value: branch},
		{Key: "FEATURE_NUM", Value: numbering.Format(num)},
		{Key: "FEATURE_DIR", Value: featureDir},
		{Key: "SPEC_FILE", Value: specFile},
	}

	switch cfg.Output {
	case "json":
		return formatter.WriteJSON(os.Stdout, map[string]string{
			"branch_name": branch,
			"feature_num": numbering.Format(num),
			"feature_dir": featureDir,
			"spec_file":   specFile,
		})
	case "shell":
		return formatter.WriteShellVars(os.Stdout, vars)
	default:
		tbl := formatter.NewTable(os.Stdout, "KEY", "VALUE")
		for _, v := range vars {
			tbl.AddRow(v.Key, v.Value)
		}
		return tbl.Render()
	}
}
