package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specsmith/cli/internal/feature"
	"github.com/specsmith/cli/internal/numbering"
	"github.com/specsmith/cli/internal/templates"
)

// The document setup helpers share one flow: locate the current feature,
// instantiate the matching template if the document is absent, print paths.
// Each helper owns its own missing-file policy; the addressing layer never
// raises on absence.

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Scaffold the implementation plan document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(templates.Plan, func(p *feature.Paths) string { return p.Plan })
	},
}

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Scaffold the design document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(templates.Design, func(p *feature.Paths) string { return p.Design })
	},
}

var brainstormCmd = &cobra.Command{
	Use:   "brainstorm",
	Short: "Scaffold a brainstorm document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(templates.Brainstorm, func(p *feature.Paths) string {
			return filepath.Join(p.FeatureDir, "brainstorm.md")
		})
	},
}

var roastCmd = &cobra.Command{
	Use:   "roast",
	Short: "Scaffold an adversarial review document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(templates.Roast, func(p *feature.Paths) string {
			return filepath.Join(p.FeatureDir, "roast.md")
		})
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Scaffold the task breakdown document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(templates.Tasks, func(p *feature.Paths) string { return p.Tasks })
	},
}

func init() {
	rootCmd.AddCommand(planCmd, designCmd, brainstormCmd, roastCmd, tasksCmd)
}

func runSetup(templateName string, target func(*feature.Paths) string) error {
	loc, err := newLocator()
	if err != nil {
		return err
	}

	ctx := context.Background()
	p, diag := loc.Paths(ctx)
	var amb *feature.AmbiguousFeatureError
	if errors.As(diag, &amb) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", amb)
	}

	if _, err := os.Stat(p.FeatureDir); err != nil {
		return fmt.Errorf("feature directory %s does not exist; run 'smith new' first", p.FeatureDir)
	}

	targetPath := target(p)
	if dryRun {
		fmt.Printf("[dry-run] Would scaffold %s\n", targetPath)
		return nil
	}

	number := ""
	if nums := numbering.ExtractPrefixes([]string{p.Branch}); len(nums) == 1 {
		number = numbering.Format(nums[0])
	}
	written, err := templates.Install(filepath.Join(p.Root, cfg.TemplatesDir), templateName, targetPath, templates.Vars{
		Number: number,
		Name:   p.Branch,
		Branch: p.Branch,
	})
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintf(os.Stderr, "%s already exists, leaving it alone\n", targetPath)
	}

	return writePaths(p)
}
