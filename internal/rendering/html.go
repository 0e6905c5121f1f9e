package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// RenderHTML renders the view as a standalone, print-ready HTML page.
func RenderHTML(view types.View) (string, error) {
	content, err := templateFS.ReadFile(htmlTemplateName)
	if err != nil {
		return "", &TemplateError{Template: htmlTemplateName, Message: "failed to read embedded template", Cause: err}
	}

	tmpl, err := template.New("cv").Parse(string(content))
	if err != nil {
		return "", &TemplateError{Template: htmlTemplateName, Message: "failed to parse template", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, view); err != nil {
		return "", &RenderError{Format: "html", Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}
