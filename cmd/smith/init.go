package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specsmith/cli/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up SpecSmith in the current project",
	Long: `Create the specs/ directory, a .specsmith/ config directory with a
starter config.yaml, and an empty templates directory for project overrides
of the embedded document templates.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const starterConfig = `# SpecSmith configuration. Everything here is optional.
# output: table        # table, json, shell
# specs_dir: specs
# templates_dir: .specsmith/templates
# git:
#   command: git
#   timeout_seconds: 3
`

func runInit(cmd *cobra.Command, args []string) error {
	resolver := workspace.NewResolver(logger)
	root, err := resolver.Resolve()
	if err != nil {
		return err
	}

	dirs := []string{
		filepath.Join(root, cfg.SpecsDir),
		filepath.Join(root, cfg.TemplatesDir),
	}
	for _, dir := range dirs {
		if dryRun {
			fmt.Printf("[dry-run] Would create %s\n", dir)
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(root, ".specsmith", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) && !dryRun {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
			return fmt.Errorf("write starter config: %w", err)
		}
	}

	if !dryRun {
		fmt.Printf("SpecSmith initialized in %s\n", root)
		fmt.Printf("  %s/           feature directories\n", cfg.SpecsDir)
		fmt.Printf("  %s/  template overrides\n", cfg.TemplatesDir)
		fmt.Println("Next: smith new <description of your first feature>")
	}
	return nil
}
