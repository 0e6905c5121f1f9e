package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	embedded "github.com/jonathan/cv-builder/schemas"
)

// loadDocument reads a document snapshot, checks it against the document
// schema and normalizes it for its variant.
func loadDocument(path string) (types.Document, *document.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, nil, fmt.Errorf("failed to read document file: %w", err)
	}
	if err := schemas.ValidateJSONString(embedded.Document, string(data)); err != nil {
		return types.Document{}, nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, nil, fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}

	v, err := registry.Get(doc.Variant)
	if err != nil {
		return types.Document{}, nil, err
	}

	store := document.NewStore(v)
	normalized, err := store.Normalize(doc)
	if err != nil {
		return types.Document{}, nil, err
	}
	return normalized, store, nil
}

// loadOps reads a JSON op script: either an array of ops or {"ops": [...]}.
// Unknown keys are rejected so a misspelt field never defaults silently.
func loadOps(path string) ([]document.Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ops file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ops []document.Op
		if err := decodeStrict(trimmed, &ops); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ops JSON: %w", err)
		}
		return ops, nil
	}

	var script struct {
		Ops []document.Op `json:"ops"`
	}
	if err := decodeStrict(trimmed, &script); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ops JSON: %w", err)
	}
	return script.Ops, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	return writeOutput(w, path, data)
}

// writeOutput writes data to path, creating parent directories, or to w when
// path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
