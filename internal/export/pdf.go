package export

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single PDF export including browser start-up.
const DefaultPDFTimeout = 60 * time.Second

// A4 paper size in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFExporter prints HTML surfaces to PDF with a headless Chrome.
type PDFExporter struct {
	// ChromePath overrides the browser executable; empty uses chromedp's lookup.
	ChromePath string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewPDFExporter creates a PDF exporter. A zero timeout uses DefaultPDFTimeout.
func NewPDFExporter(chromePath string, timeout time.Duration, logger *slog.Logger) *PDFExporter {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExporter{ChromePath: chromePath, Timeout: timeout, Logger: logger}
}

// Export renders an HTML surface to an A4 PDF.
func (e *PDFExporter) Export(ctx context.Context, surface Surface, title string) (*Artifact, error) {
	if surface.Format != FormatHTML {
		return nil, &ExportError{Format: FormatPDF, Message: "PDF export requires an HTML surface, got " + surface.Format}
	}

	start := time.Now()
	data, err := e.print(ctx, surface.Content)
	if err != nil {
		e.Logger.Warn("pdf export failed", "title", title, "error", err)
		return nil, &ExportError{Format: FormatPDF, Message: "failed to print PDF", Cause: err}
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, &ExportError{Format: FormatPDF, Message: "browser returned invalid PDF output"}
	}

	e.Logger.Debug("pdf exported", "title", title, "bytes", len(data), "duration", time.Since(start))
	return newArtifact(FormatPDF, title, data), nil
}

func (e *PDFExporter) print(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.ChromePath))
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	tmpDir, err := os.MkdirTemp("", "cv-export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0600); err != nil {
		return nil, err
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
