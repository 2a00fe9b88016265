package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specsmith/cli/internal/feature"
	"github.com/specsmith/cli/internal/formatter"
)

var (
	checkRequirePlan  bool
	checkRequireTasks bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify prerequisite documents exist for the current feature",
	Long: `List which well-known documents of the current feature exist on disk.
Fails when the feature directory or spec is missing, or when a document
demanded via --require-* is absent. Helpers with laxer policies should use
'smith paths' instead and decide for themselves.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkRequirePlan, "require-plan", false, "Fail unless plan.md exists")
	checkCmd.Flags().BoolVar(&checkRequireTasks, "require-tasks", false, "Fail unless tasks.md exists")
	rootCmd.AddCommand(checkCmd)
}

type checkResult struct {
	FeatureDir string   `json:"feature_dir"`
	Available  []string `json:"available_docs"`
	Missing    []string `json:"missing_docs,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	loc, err := newLocator()
	if err != nil {
		return err
	}

	p, diag := loc.Paths(context.Background())
	var amb *feature.AmbiguousFeatureError
	if errors.As(diag, &amb) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", amb)
	}

	if _, err := os.Stat(p.FeatureDir); err != nil {
		return fmt.Errorf("feature directory %s does not exist; run 'smith new' first", p.FeatureDir)
	}
	if _, err := os.Stat(p.Spec); err != nil {
		return fmt.Errorf("spec not found at %s; run 'smith new' first", p.Spec)
	}

	docs := []struct {
		name     string
		path     string
		required bool
	}{
		{feature.SpecFile, p.Spec, true},
		{feature.PlanFile, p.Plan, checkRequirePlan},
		{feature.TasksFile, p.Tasks, checkRequireTasks},
		{feature.ResearchFile, p.Research, false},
		{feature.DataModelFile, p.DataModel, false},
		{feature.DesignFile, p.Design, false},
		{feature.QuickstartFile, p.Quickstart, false},
		{feature.ContractsDir, p.Contracts, false},
	}

	result := checkResult{FeatureDir: p.FeatureDir}
	var requiredMissing []string
	for _, doc := range docs {
		if _, err := os.Stat(doc.path); err == nil {
			result.Available = append(result.Available, doc.name)
			continue
		}
		result.Missing = append(result.Missing, doc.name)
		if doc.required {
			requiredMissing = append(requiredMissing, doc.name)
		}
	}

	if cfg.Output == "json" {
		if err := formatter.WriteJSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		fmt.Printf("FEATURE_DIR: %s\n", result.FeatureDir)
		fmt.Printf("AVAILABLE: %s\n", strings.Join(result.Available, ", "))
		if len(result.Missing) > 0 {
			fmt.Printf("MISSING: %s\n", strings.Join(result.Missing, ", "))
		}
	}

	if len(requiredMissing) > 0 {
		return fmt.Errorf("required documents missing: %s", strings.Join(requiredMissing, ", "))
	}
	return nil
}
