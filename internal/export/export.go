// Package export turns rendered CV surfaces into downloadable artifacts.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Surface formats.
const (
	FormatHTML  = "html"
	FormatLaTeX = "latex"
	FormatPDF   = "pdf"
)

var extensions = map[string]string{
	FormatHTML:  ".html",
	FormatLaTeX: ".tex",
	FormatPDF:   ".pdf",
}

var contentTypes = map[string]string{
	FormatHTML:  "text/html; charset=utf-8",
	FormatLaTeX: "application/x-tex; charset=utf-8",
	FormatPDF:   "application/pdf",
}

// ContentType returns the MIME type served for a surface format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Surface is a rendered document ready to be exported.
type Surface struct {
	Format  string
	Content string
}

// Artifact is an exported file.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter produces an artifact from a surface. The title names the file.
type Exporter interface {
	Export(ctx context.Context, surface Surface, title string) (*Artifact, error)
}

// FileExporter exports HTML and LaTeX surfaces as-is.
type FileExporter struct{}

// Export wraps the surface content in an artifact.
func (FileExporter) Export(ctx context.Context, surface Surface, title string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Format: surface.Format, Message: "export cancelled", Cause: err}
	}
	if surface.Format != FormatHTML && surface.Format != FormatLaTeX {
		return nil, &ExportError{Format: surface.Format, Message: "unsupported surface format"}
	}
	return newArtifact(surface.Format, title, []byte(surface.Content)), nil
}

func newArtifact(format, title string, data []byte) *Artifact {
	return &Artifact{
		Filename:    SanitizeFilename(title) + extensions[format],
		ContentType: contentTypes[format],
		Data:        data,
	}
}

// SanitizeFilename makes a title safe to use as a file name. Letters, digits,
// dots, dashes and underscores are kept; runs of anything else collapse to a
// single underscore. An empty result becomes "cv".
func SanitizeFilename(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	name := strings.Trim(b.String(), ".")
	if name == "" {
		return "cv"
	}
	return name
}

// WriteArtifact writes the artifact into dir, creating it if needed, and
// returns the file path.
func WriteArtifact(dir string, a *Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", a.Filename, err)
	}
	return path, nil
}
