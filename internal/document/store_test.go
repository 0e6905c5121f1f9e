package document

import (
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workStore() *Store {
	return NewStore(variant.WorkVariant())
}

func scholarshipStore() *Store {
	return NewStore(variant.ScholarshipVariant())
}

func TestNew_OneEmptyEntryPerSection(t *testing.T) {
	for _, v := range variant.Builtins() {
		t.Run(v.Name, func(t *testing.T) {
			s := NewStore(v)
			doc := s.New()

			assert.Equal(t, v.Name, doc.Variant)
			assert.Len(t, doc.Sections, len(v.Sections))
			assert.NotNil(t, doc.Skills)
			assert.Empty(t, doc.Skills)

			ids := map[types.ID]bool{}
			for _, schema := range v.Sections {
				entries := doc.Sections[schema.Key]
				require.Len(t, entries, 1, schema.Key)

				e := entries[0]
				assert.False(t, ids[e.ID], "duplicate id %d", e.ID)
				ids[e.ID] = true

				for _, f := range schema.Fields {
					value, ok := e.Fields[f]
					assert.True(t, ok, "%s.%s missing", schema.Key, f)
					assert.Empty(t, value)
				}
				for _, f := range schema.PointFields {
					assert.Equal(t, []string{""}, e.Points[f])
				}
				assert.Nil(t, e.Rating)
			}
			assert.Equal(t, types.ID(len(v.Sections)+1), doc.NextID)
		})
	}
}

func TestNew_TextBlocks(t *testing.T) {
	doc := scholarshipStore().New()
	assert.Equal(t, map[string]string{"professional_summary": "", "research_interests": ""}, doc.Text)

	assert.Nil(t, workStore().New().Text)
}

func TestSetPersonalField(t *testing.T) {
	s := workStore()
	doc := s.New()

	updated := s.SetPersonalField(doc, types.PersonalEmail, "a@b.com")
	assert.Equal(t, "a@b.com", updated.Personal.Email)
	assert.Empty(t, doc.Personal.Email)

	assert.PanicsWithValue(t,
		&PreconditionError{Op: "set_personal", Message: `unknown personal field "fax"`},
		func() { s.SetPersonalField(doc, "fax", "1") })
}

func TestSetText(t *testing.T) {
	s := scholarshipStore()
	doc := s.New()

	updated := s.SetText(doc, "research_interests", "Distributed systems")
	assert.Equal(t, "Distributed systems", updated.Text["research_interests"])
	assert.Empty(t, doc.Text["research_interests"])

	assert.Panics(t, func() { workStore().SetText(workStore().New(), "research_interests", "x") })
}

func TestSetEntryField_DoesNotMutateInput(t *testing.T) {
	s := workStore()
	doc := s.New()
	before := doc.Clone()

	updated := s.SetEntryField(doc, "education", 0, "institution", "MIT")

	assert.Equal(t, "MIT", updated.Sections["education"][0].Fields["institution"])
	assert.Equal(t, before, doc)
	assert.Equal(t, doc.Sections["education"][0].ID, updated.Sections["education"][0].ID)
}

func TestSetEntryField_Preconditions(t *testing.T) {
	s := workStore()
	doc := s.New()

	tests := []struct {
		name string
		fn   func()
	}{
		{"unknown section", func() { s.SetEntryField(doc, "hobbies", 0, "name", "x") }},
		{"unknown field", func() { s.SetEntryField(doc, "education", 0, "colour", "x") }},
		{"index too large", func() { s.SetEntryField(doc, "education", 1, "institution", "x") }},
		{"negative index", func() { s.SetEntryField(doc, "education", -1, "institution", "x") }},
		{"point field as scalar", func() { s.SetEntryField(doc, "work_experience", 0, "points", "x") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				_, ok := r.(*PreconditionError)
				assert.True(t, ok, "panic value should be *PreconditionError, got %T", r)
			}()
			tt.fn()
		})
	}
}

func TestSetEntryField_Rating(t *testing.T) {
	s := scholarshipStore()
	doc := s.New()

	updated := s.SetEntryField(doc, "education", 0, "gpa", "4.5")
	require.NotNil(t, updated.Sections["education"][0].Rating)
	assert.Equal(t, 4.5, *updated.Sections["education"][0].Rating)

	clamped := s.SetEntryField(doc, "education", 0, "gpa", "9")
	assert.Equal(t, 5.0, *clamped.Sections["education"][0].Rating)

	unchanged := s.SetEntryField(updated, "education", 0, "gpa", "abc")
	assert.Equal(t, updated, unchanged)

	cleared := s.SetEntryField(updated, "education", 0, "gpa", "  ")
	assert.Nil(t, cleared.Sections["education"][0].Rating)
}

func TestSetRating_Clamps(t *testing.T) {
	s := scholarshipStore()
	doc := s.New()

	low := s.SetRating(doc, "education", 0, 0.2)
	assert.Equal(t, 1.0, *low.Sections["education"][0].Rating)

	high := s.SetRating(doc, "education", 0, 7.3)
	assert.Equal(t, 5.0, *high.Sections["education"][0].Rating)

	raw := s.SetRating(doc, "education", 0, 3.14159)
	assert.Equal(t, 3.14159, *raw.Sections["education"][0].Rating)

	assert.Panics(t, func() { s.SetRating(doc, "leadership", 0, 3) })
}

func TestAddEntry_FreshIDs(t *testing.T) {
	s := workStore()
	doc := s.New()
	first := doc.Sections["awards"][0].ID

	doc = s.AddEntry(doc, "awards")
	doc = s.AddEntry(doc, "awards")

	entries := doc.Sections["awards"]
	require.Len(t, entries, 3)
	assert.Equal(t, first, entries[0].ID)
	assert.NotEqual(t, entries[1].ID, entries[2].ID)
	assert.Greater(t, entries[2].ID, entries[1].ID)
	assert.Equal(t, entries[2].ID+1, doc.NextID)
}

func TestRemoveEntry_LastEntryIsNoOp(t *testing.T) {
	for _, v := range variant.Builtins() {
		s := NewStore(v)
		doc := s.New()
		for _, schema := range v.Sections {
			after := s.RemoveEntry(doc, schema.Key, 0)
			assert.Equal(t, doc.Sections[schema.Key], after.Sections[schema.Key], "%s/%s", v.Name, schema.Key)
		}
	}
}

func TestRemoveEntry_IDsNotReused(t *testing.T) {
	s := workStore()
	doc := s.AddEntry(s.New(), "awards")
	removed := doc.Sections["awards"][1].ID

	doc = s.RemoveEntry(doc, "awards", 1)
	require.Len(t, doc.Sections["awards"], 1)

	doc = s.AddEntry(doc, "awards")
	assert.NotEqual(t, removed, doc.Sections["awards"][1].ID)
}

func TestRemoveEntry_KeepsOrder(t *testing.T) {
	s := workStore()
	doc := s.New()
	doc = s.AddEntry(doc, "awards")
	doc = s.AddEntry(doc, "awards")
	ids := []types.ID{doc.Sections["awards"][0].ID, doc.Sections["awards"][2].ID}

	doc = s.RemoveEntry(doc, "awards", 1)
	got := []types.ID{doc.Sections["awards"][0].ID, doc.Sections["awards"][1].ID}
	assert.Equal(t, ids, got)
}

func TestPoints(t *testing.T) {
	s := workStore()
	doc := s.New()

	doc = s.SetPoint(doc, "work_experience", 0, "points", 0, "Built things")
	doc = s.AddPoint(doc, "work_experience", 0, "points")
	doc = s.SetPoint(doc, "work_experience", 0, "points", 1, "Shipped things")
	assert.Equal(t, []string{"Built things", "Shipped things"}, doc.Sections["work_experience"][0].Points["points"])

	doc = s.RemovePoint(doc, "work_experience", 0, "points", 0)
	assert.Equal(t, []string{"Shipped things"}, doc.Sections["work_experience"][0].Points["points"])

	assert.Panics(t, func() { s.SetPoint(doc, "work_experience", 0, "points", 3, "x") })
	assert.Panics(t, func() { s.AddPoint(doc, "education", 0, "points") })
}

func TestRemovePoint_LastPointBecomesEmptyString(t *testing.T) {
	for _, v := range variant.Builtins() {
		s := NewStore(v)
		for _, schema := range v.Sections {
			for _, pf := range schema.PointFields {
				doc := s.SetPoint(s.New(), schema.Key, 0, pf, 0, "only")
				doc = s.RemovePoint(doc, schema.Key, 0, pf, 0)
				assert.Equal(t, []string{""}, doc.Sections[schema.Key][0].Points[pf], "%s/%s.%s", v.Name, schema.Key, pf)
			}
		}
	}
}

func TestSetPoint_DoesNotMutateInput(t *testing.T) {
	s := scholarshipStore()
	doc := s.New()

	updated := s.SetPoint(doc, "leadership", 0, "points", 0, "Chair")
	assert.Equal(t, []string{""}, doc.Sections["leadership"][0].Points["points"])
	assert.Equal(t, []string{"Chair"}, updated.Sections["leadership"][0].Points["points"])
}

func TestAddSkill_BlankIsNoOp(t *testing.T) {
	s := workStore()
	doc := s.New()

	for _, label := range []string{"", "   ", "\t\n"} {
		after := s.AddSkill(doc, label)
		assert.Equal(t, doc.Skills, after.Skills)
		assert.Equal(t, doc.NextID, after.NextID)
	}
}

func TestAddSkill_RemoveSkillRoundTrip(t *testing.T) {
	s := workStore()
	doc := s.AddSkill(s.New(), "SQL")
	prior := doc.Skills

	added := s.AddSkill(doc, "  Go ")
	require.Len(t, added.Skills, 2)
	assert.Equal(t, "Go", added.Skills[1].Label)

	removed := s.RemoveSkill(added, added.Skills[1].ID)
	assert.Equal(t, prior, removed.Skills)
}

func TestRemoveSkill_UnknownIDIsNoOp(t *testing.T) {
	s := workStore()
	doc := s.AddSkill(s.New(), "Go")

	after := s.RemoveSkill(doc, 999)
	assert.Equal(t, doc, after)
}

func TestSkillIDsShareSequenceWithEntries(t *testing.T) {
	s := workStore()
	doc := s.New()
	doc = s.AddSkill(doc, "Go")
	doc = s.AddEntry(doc, "awards")

	assert.NotEqual(t, doc.Skills[0].ID, doc.Sections["awards"][1].ID)
}
