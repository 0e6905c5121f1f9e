package main

import (
	"bytes"
	"fmt"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Project a document into its preview",
	Long:  "Derives the display view of a document and prints it as JSON, boxed text, HTML or LaTeX.",
	RunE:  runPreview,
}

var (
	previewDocFile    string
	previewFormat     string
	previewOutputFile string
)

func init() {
	previewCmd.Flags().StringVarP(&previewDocFile, "doc", "d", "", "Path to document JSON (required)")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "json", "Output format: json, text, html or latex")
	previewCmd.Flags().StringVarP(&previewOutputFile, "out", "o", "", "Path to output file (default: stdout)")

	_ = previewCmd.MarkFlagRequired("doc")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	doc, store, err := loadDocument(previewDocFile)
	if err != nil {
		return err
	}
	view := preview.NewProjector(store.Variant()).Project(doc)

	switch previewFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), previewOutputFile, view)
	case "text":
		var buf bytes.Buffer
		observability.NewPrinter(&buf).PrintView(&view)
		return writeOutput(cmd.OutOrStdout(), previewOutputFile, buf.Bytes())
	case export.FormatHTML, export.FormatLaTeX:
		content, err := renderFormat(view, previewFormat)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), previewOutputFile, []byte(content))
	default:
		return fmt.Errorf("unknown format %q (want json, text, html or latex)", previewFormat)
	}
}

// renderFormat draws a view as html or latex, honouring the configured
// LaTeX template.
func renderFormat(view types.View, format string) (string, error) {
	switch format {
	case export.FormatHTML:
		return rendering.RenderHTML(view)
	case export.FormatLaTeX:
		if settings.Template != "" {
			return rendering.RenderLaTeXFile(view, settings.Template)
		}
		return rendering.RenderLaTeX(view)
	}
	return "", fmt.Errorf("unsupported render format %q", format)
}
