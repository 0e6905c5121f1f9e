package schemas

import (
	"os"
	"path/filepath"
	"testing"

	embedded "github.com/jonathan/cv-builder/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
	"variant": "work",
	"personal": {"name": "Ada", "phone": "", "email": "ada@example.com", "location": ""},
	"sections": {
		"education": [{"id": 1, "fields": {"institution": "MIT", "degree": ""}}],
		"work_experience": [{"id": 2, "fields": {"role": ""}, "points": {"points": [""]}}]
	},
	"skills": [{"id": 3, "label": "Go"}],
	"next_id": 4
}`

func TestValidateJSONString_ValidDocument(t *testing.T) {
	assert.NoError(t, ValidateJSONString(embedded.Document, validDocument))
}

func TestValidateJSONString_EmptySection(t *testing.T) {
	doc := `{
		"variant": "work",
		"personal": {},
		"sections": {"education": []},
		"skills": [],
		"next_id": 1
	}`

	err := ValidateJSONString(embedded.Document, doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, embedded.Document, validationErr.Schema)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSONString_EmptyPointList(t *testing.T) {
	doc := `{
		"variant": "work",
		"personal": {},
		"sections": {"work_experience": [{"id": 1, "fields": {}, "points": {"points": []}}]},
		"skills": [],
		"next_id": 2
	}`

	err := ValidateJSONString(embedded.Document, doc)
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestValidateJSONString_BlankSkill(t *testing.T) {
	doc := `{
		"variant": "work",
		"personal": {},
		"sections": {},
		"skills": [{"id": 1, "label": "   "}],
		"next_id": 2
	}`

	err := ValidateJSONString(embedded.Document, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills.0.label")
}

func TestValidateJSONString_MissingFields(t *testing.T) {
	err := ValidateJSONString(embedded.Document, `{"variant": "work"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 4)
}

func TestValidateValue_View(t *testing.T) {
	view := map[string]any{
		"variant": "work",
		"title":   "Ada_Resume",
		"name":    "Ada",
		"contact": "ada@example.com",
		"sections": []any{
			map[string]any{
				"key":   "education",
				"title": "Education",
				"kind":  "entries",
				"entries": []any{
					map[string]any{"id": 1, "heading": "MIT"},
				},
			},
		},
	}
	assert.NoError(t, ValidateValue(embedded.View, view))

	view["sections"] = []any{map[string]any{"key": "x", "title": "X", "kind": "bogus"}}
	assert.Error(t, ValidateValue(embedded.View, view))
}

func TestValidateJSON_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0644))

	assert.NoError(t, ValidateJSON(embedded.Document, path))
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	err := ValidateJSON(embedded.Document, "testdata/nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(path, []byte("{ invalid json }"), 0644))

	err := ValidateJSON(embedded.Document, path)
	require.Error(t, err)
	_, isValidation := err.(*ValidationError)
	assert.False(t, isValidation, "malformed input is a read error, not a validation error")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := ValidateJSONString("nope.schema.json", `{}`)
	require.Error(t, err)

	loadErr, ok := err.(*SchemaLoadError)
	require.True(t, ok)
	assert.Equal(t, "nope.schema.json", loadErr.Path)
	assert.NotNil(t, loadErr.Unwrap())
}
