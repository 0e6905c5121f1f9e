package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a document as HTML, LaTeX and optionally PDF",
	Long:  "Renders the document preview and writes <title>.html and <title>.tex (and <title>.pdf with --pdf) into the output directory. Formats are produced concurrently.",
	RunE:  runExport,
}

var (
	exportDocFile  string
	exportOutDir   string
	exportPDF      bool
	exportTemplate string
)

func init() {
	exportCmd.Flags().StringVarP(&exportDocFile, "doc", "d", "", "Path to document JSON (required)")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "Output directory (default from config, then \"out\")")
	exportCmd.Flags().BoolVar(&exportPDF, "pdf", false, "Also print a PDF with a headless browser")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Path to a LaTeX template override")

	_ = exportCmd.MarkFlagRequired("doc")

	rootCmd.AddCommand(exportCmd)
}

// exportJob renders the source surface and hands it to an exporter.
type exportJob struct {
	format   string
	source   string
	exporter export.Exporter
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportTemplate != "" {
		settings.Template = exportTemplate
	}
	outDir := exportOutDir
	if outDir == "" {
		outDir = settings.OutputDir
	}

	doc, store, err := loadDocument(exportDocFile)
	if err != nil {
		return err
	}
	view := preview.NewProjector(store.Variant()).Project(doc)

	jobs := []exportJob{
		{format: export.FormatHTML, source: export.FormatHTML, exporter: export.FileExporter{}},
		{format: export.FormatLaTeX, source: export.FormatLaTeX, exporter: export.FileExporter{}},
	}
	if exportPDF {
		pdf := export.NewPDFExporter(settings.ChromePath, settings.ExportTimeout(), logger)
		jobs = append(jobs, exportJob{format: export.FormatPDF, source: export.FormatHTML, exporter: pdf})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	paths, err := exportAll(ctx, view, outDir, jobs)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintArtifacts(paths)
	return nil
}

// exportAll runs every job concurrently from the same view. The first failure
// cancels the others.
func exportAll(ctx context.Context, view types.View, outDir string, jobs []exportJob) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	paths := make([]string, 0, len(jobs))

	for _, job := range jobs {
		g.Go(func() error {
			content, err := renderFormat(view, job.source)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", job.format, err)
			}

			artifact, err := job.exporter.Export(ctx, export.Surface{Format: job.source, Content: content}, view.Title)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", job.format, err)
			}

			path, err := export.WriteArtifact(outDir, artifact)
			if err != nil {
				return err
			}
			logger.Debug("artifact written", "format", job.format, "path", path, "bytes", len(artifact.Data))

			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
