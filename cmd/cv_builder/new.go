package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty document",
	Long:  "Writes the initial snapshot of a document for a variant: every section holds one empty entry and the skill list is empty.",
	RunE:  runNew,
}

var (
	newVariant    string
	newOutputFile string
)

func init() {
	newCmd.Flags().StringVar(&newVariant, "variant", "", "Variant name (default from config, then \"work\")")
	newCmd.Flags().StringVarP(&newOutputFile, "out", "o", "", "Path to output document JSON (default: stdout)")

	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	name := newVariant
	if name == "" {
		name = settings.Variant
	}

	v, err := registry.Get(name)
	if err != nil {
		return err
	}

	doc := document.NewStore(v).New()
	if err := writeJSON(cmd.OutOrStdout(), newOutputFile, doc); err != nil {
		return err
	}

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocumentSummary(&doc, v)
	}
	if newOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s document: %s\n", v.Name, newOutputFile)
	}
	return nil
}
