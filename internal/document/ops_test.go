package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpValidate(t *testing.T) {
	rating := 4.0

	tests := []struct {
		name    string
		op      Op
		wantErr string
	}{
		{"set personal", Op{Op: OpSetPersonal, Field: "name", Value: "Ada"}, ""},
		{"add skill", Op{Op: OpAddSkill, Value: "Go"}, ""},
		{"set rating", Op{Op: OpSetRating, Section: "education", Rating: &rating}, ""},
		{"unknown op", Op{Op: "rename"}, "Op: oneof"},
		{"missing op", Op{}, "Op: required"},
		{"set entry field without section", Op{Op: OpSetEntryField, Field: "x"}, "Section: required_if"},
		{"set rating without value", Op{Op: OpSetRating, Section: "education"}, "Rating: required_if"},
		{"remove skill without id", Op{Op: OpRemoveSkill}, "SkillID: required_if"},
		{"negative index", Op{Op: OpRemoveEntry, Section: "awards", Index: -1}, "Index: min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.IsType(t, &OpValidationError{}, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApply_PreconditionReturnedAsError(t *testing.T) {
	s := workStore()
	doc := s.New()

	out, err := s.Apply(doc, Op{Op: OpSetEntryField, Section: "hobbies", Field: "name", Value: "x"})
	require.Error(t, err)

	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, OpSetEntryField, pe.Op)
	assert.Equal(t, doc, out)
}

func TestApply_EveryOp(t *testing.T) {
	s := scholarshipStore()
	doc := s.New()
	rating := 3.7

	ops := []Op{
		{Op: OpSetPersonal, Field: "name", Value: "Ada Lovelace"},
		{Op: OpSetText, Block: "professional_summary", Value: "Mathematician"},
		{Op: OpSetEntryField, Section: "education", Field: "institution", Value: "MIT"},
		{Op: OpSetRating, Section: "education", Rating: &rating},
		{Op: OpAddEntry, Section: "leadership"},
		{Op: OpRemoveEntry, Section: "leadership", Index: 1},
		{Op: OpSetPoint, Section: "leadership", PointField: "points", Value: "Chair"},
		{Op: OpAddPoint, Section: "leadership", PointField: "points"},
		{Op: OpRemovePoint, Section: "leadership", PointField: "points", PointIndex: 1},
		{Op: OpAddSkill, Value: "Analysis"},
	}

	out, err := s.ApplyAll(doc, ops)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", out.Personal.Name)
	assert.Equal(t, "Mathematician", out.Text["professional_summary"])
	assert.Equal(t, "MIT", out.Sections["education"][0].Fields["institution"])
	assert.Equal(t, 3.7, *out.Sections["education"][0].Rating)
	assert.Len(t, out.Sections["leadership"], 1)
	assert.Equal(t, []string{"Chair"}, out.Sections["leadership"][0].Points["points"])
	require.Len(t, out.Skills, 1)

	out, err = s.Apply(out, Op{Op: OpRemoveSkill, SkillID: out.Skills[0].ID})
	require.NoError(t, err)
	assert.Empty(t, out.Skills)
}

func TestApplyAll_AllOrNothing(t *testing.T) {
	s := workStore()
	doc := s.New()

	ops := []Op{
		{Op: OpSetPersonal, Field: "name", Value: "Ada"},
		{Op: OpAddEntry, Section: "awards"},
		{Op: OpSetEntryField, Section: "awards", Index: 5, Field: "title", Value: "x"},
	}

	out, err := s.ApplyAll(doc, ops)
	require.Error(t, err)

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, 2, opErr.Index)
	assert.Equal(t, OpSetEntryField, opErr.Op)

	var pe *PreconditionError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, doc, out)
}

func TestOp_JSON(t *testing.T) {
	data := `[
		{"op": "set_entry_field", "section": "education", "index": 0, "field": "institution", "value": "MIT"},
		{"op": "add_skill", "value": "Go"}
	]`

	var ops []Op
	require.NoError(t, json.Unmarshal([]byte(data), &ops))

	s := workStore()
	out, err := s.ApplyAll(s.New(), ops)
	require.NoError(t, err)
	assert.Equal(t, "MIT", out.Sections["education"][0].Fields["institution"])
	assert.Equal(t, []types.Skill{{ID: out.NextID - 1, Label: "Go"}}, out.Skills)
}
