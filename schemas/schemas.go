// Package schemas embeds the JSON Schema definitions for documents, views and variants.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	Document = "document.schema.json"
	View     = "view.schema.json"
	Variant  = "variant.schema.json"
)

// All lists every embedded schema file.
var All = []string{Document, View, Variant}
