package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	htmlTemplateName  = "templates/cv.html.tmpl"
	latexTemplateName = "templates/cv.tex.tmpl"

	// LaTeX braces collide with the default {{ }} delimiters.
	latexLeftDelim  = "<<"
	latexRightDelim = ">>"
)

var latexFuncs = template.FuncMap{
	"escape": EscapeLaTeX,
	"join":   joinLaTeX,
}

// RenderLaTeX renders the view with the built-in LaTeX template.
func RenderLaTeX(view types.View) (string, error) {
	content, err := templateFS.ReadFile(latexTemplateName)
	if err != nil {
		return "", &TemplateError{Template: latexTemplateName, Message: "failed to read embedded template", Cause: err}
	}
	tmpl, err := parseLaTeX(latexTemplateName, string(content))
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, view)
}

// RenderLaTeXFile renders the view with a LaTeX template read from disk.
// The template uses << >> delimiters and may call escape and join.
func RenderLaTeXFile(view types.View, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, view)
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Template: templatePath,
				Message:  fmt.Sprintf("template file not found: %s", templatePath),
				Cause:    err,
			}
		}
		return nil, &TemplateError{
			Template: templatePath,
			Message:  "failed to read template file",
			Cause:    err,
		}
	}
	return parseLaTeX(templatePath, string(content))
}

func parseLaTeX(name, content string) (*template.Template, error) {
	tmpl, err := template.New("cv").
		Delims(latexLeftDelim, latexRightDelim).
		Funcs(latexFuncs).
		Option("missingkey=error").
		Parse(content)
	if err != nil {
		return nil, &TemplateError{Template: name, Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

func executeLaTeX(tmpl *template.Template, view types.View) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, view); err != nil {
		return "", &RenderError{Format: "latex", Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}
