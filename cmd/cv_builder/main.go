// Package main provides the cv_builder command line tool: it creates and edits
// CV documents, previews them and exports them, and serves the HTTP API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/variant"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	verbose     bool
	variantsDir string

	// populated by loadSettings before every command
	settings config.Config
	registry *variant.Registry
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "cv_builder",
	Short:             "CV and résumé builder",
	Long:              "cv_builder authors CV documents against a variant (work résumé or scholarship CV), previews them and exports HTML, LaTeX and PDF.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&variantsDir, "variants-dir", "", "Directory of extra variant definitions (JSON or YAML)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings resolves flags over config file over environment over defaults
// and loads the variant registry.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var file *config.Config
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		file = loaded
	}

	settings = config.Resolve(file)
	if variantsDir != "" {
		settings.VariantsDir = variantsDir
	}
	settings.Verbose = settings.Verbose || verbose
	if err := settings.Validate(); err != nil {
		return err
	}

	logger = observability.NewLogger(cmd.ErrOrStderr(), settings.Verbose)

	registry = variant.NewRegistry()
	if settings.VariantsDir != "" {
		names, err := registry.LoadDir(settings.VariantsDir)
		if err != nil {
			return fmt.Errorf("failed to load variants: %w", err)
		}
		logger.Debug("loaded variants", "dir", settings.VariantsDir, "names", names)
	}
	return nil
}
