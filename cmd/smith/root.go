package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/specsmith/cli/internal/config"
	"github.com/specsmith/cli/internal/feature"
	"github.com/specsmith/cli/internal/gitops"
	"github.com/specsmith/cli/internal/logging"
	"github.com/specsmith/cli/internal/workspace"
)

var (
	// Global flags
	dryRun  bool
	verbose bool
	output  string
	cfgFile string

	// Process-wide state built in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "smith",
	Short: "SpecSmith feature scaffolding CLI",
	Long: `smith keeps a suite of spec-driven development helpers agreeing on
which feature they are operating on and where its documents live.

Core Commands:
  new          Create a numbered feature (slug, directory, branch, spec)
  paths        Print every well-known path of the current feature
  plan         Scaffold the implementation plan document
  design       Scaffold the design document
  brainstorm   Scaffold a brainstorm document
  roast        Scaffold an adversarial review document
  check        Verify prerequisite documents exist

Features live under specs/NNN-slug/. The 3-digit number is the binding key
between a branch and its directory, so branches can be renamed freely.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

// Execute runs the root command. Exits non-zero on any command error.
func Execute() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (table, json, shell)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .specsmith/config.yaml)")
}

// bootstrap loads config and builds the logger before any subcommand runs.
func bootstrap(cmd *cobra.Command, args []string) error {
	syncConfigFlagToEnv()

	var err error
	cfg, err = config.Load(&config.Config{Output: output, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger = logging.New(cfg.Verbose)
	return nil
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(cfgFile)
	if path == "" {
		return
	}
	_ = os.Setenv("SPECSMITH_CONFIG", path)
}

// newLocator resolves the workspace root (fatal on failure), reports path
// corruption as a warning, and wires the locator with a git client.
func newLocator() (*feature.Locator, error) {
	resolver := workspace.NewResolver(logger)
	root, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}
	if err := workspace.Validate(root); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	git := gitops.NewClient(root, cfg.Git.Command, cfg.GitTimeout(), logger)
	return feature.NewLocator(root, cfg.SpecsDir, git, logger), nil
}
