package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Apply an op script to a document",
	Long:  "Applies a JSON op script to a document snapshot. The script is all-or-nothing: when any op fails, nothing is written.",
	RunE:  runEdit,
}

var (
	editDocFile    string
	editOpsFile    string
	editOutputFile string
)

func init() {
	editCmd.Flags().StringVarP(&editDocFile, "doc", "d", "", "Path to document JSON (required)")
	editCmd.Flags().StringVar(&editOpsFile, "ops", "", "Path to op script JSON (required)")
	editCmd.Flags().StringVarP(&editOutputFile, "out", "o", "", "Path to output document JSON (default: overwrite --doc)")

	_ = editCmd.MarkFlagRequired("doc")
	_ = editCmd.MarkFlagRequired("ops")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	doc, store, err := loadDocument(editDocFile)
	if err != nil {
		return err
	}

	ops, err := loadOps(editOpsFile)
	if err != nil {
		return err
	}

	next, err := store.ApplyAll(doc, ops)
	if err != nil {
		return fmt.Errorf("failed to apply ops: %w", err)
	}
	logger.Debug("ops applied", "count", len(ops), "variant", store.Variant().Name)

	out := editOutputFile
	if out == "" {
		out = editDocFile
	}
	if err := writeJSON(cmd.OutOrStdout(), out, next); err != nil {
		return err
	}

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocumentSummary(&next, store.Variant())
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d ops: %s\n", len(ops), out)
	return nil
}
