package export

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ada Lovelace_CV", "Ada_Lovelace_CV"},
		{"CV_Resume", "CV_Resume"},
		{"  José  Núñez_CV ", "José_Núñez_CV"},
		{"a/b\\c:d", "a_b_c_d"},
		{"../etc/passwd", "_etc_passwd"},
		{"", "cv"},
		{"???", "cv"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestFileExporter(t *testing.T) {
	ctx := context.Background()

	a, err := FileExporter{}.Export(ctx, Surface{Format: FormatHTML, Content: "<p>x</p>"}, "Ada Lovelace_CV")
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_CV.html", a.Filename)
	assert.Equal(t, "text/html; charset=utf-8", a.ContentType)
	assert.Equal(t, []byte("<p>x</p>"), a.Data)

	a, err = FileExporter{}.Export(ctx, Surface{Format: FormatLaTeX, Content: `\documentclass{article}`}, "CV_Resume")
	require.NoError(t, err)
	assert.Equal(t, "CV_Resume.tex", a.Filename)

	_, err = FileExporter{}.Export(ctx, Surface{Format: FormatPDF}, "CV_Resume")
	require.Error(t, err)
	assert.IsType(t, &ExportError{}, err)
}

func TestFileExporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileExporter{}.Export(ctx, Surface{Format: FormatHTML}, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	path, err := WriteArtifact(dir, &Artifact{Filename: "CV_Resume.html", Data: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "CV_Resume.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestPDFExporter_RequiresHTML(t *testing.T) {
	e := NewPDFExporter("", 0, nil)
	assert.Equal(t, DefaultPDFTimeout, e.Timeout)

	_, err := e.Export(context.Background(), Surface{Format: FormatLaTeX, Content: "x"}, "CV_Resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an HTML surface")
}

func findChrome() string {
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func TestPDFExporter_Print(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	chrome := findChrome()
	if chrome == "" {
		t.Skip("no Chrome executable available")
	}

	e := NewPDFExporter(chrome, 60*time.Second, nil)
	a, err := e.Export(context.Background(), Surface{Format: FormatHTML, Content: "<html><body><h1>Ada</h1></body></html>"}, "Ada_CV")
	require.NoError(t, err)
	assert.Equal(t, "Ada_CV.pdf", a.Filename)
	assert.Equal(t, "application/pdf", a.ContentType)
	assert.Equal(t, "%PDF", string(a.Data[:4]))
}
