// Package document implements the editing rules for CV documents. Every
// operation is a transform from a prior document to a new one; documents
// handed in are never modified.
package document

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Store applies edits to documents of one variant.
type Store struct {
	variant *types.Variant
}

// NewStore creates a store for the given variant.
func NewStore(v *types.Variant) *Store {
	return &Store{variant: v}
}

// Variant returns the variant the store edits.
func (s *Store) Variant() *types.Variant {
	return s.variant
}

// New returns the initial document: one empty entry per section, no skills.
func (s *Store) New() types.Document {
	doc := types.Document{
		Variant:  s.variant.Name,
		Sections: make(map[string][]types.Entry, len(s.variant.Sections)),
		Skills:   []types.Skill{},
		NextID:   1,
	}
	if len(s.variant.TextBlocks) > 0 {
		doc.Text = make(map[string]string, len(s.variant.TextBlocks))
		for _, b := range s.variant.TextBlocks {
			doc.Text[b.Key] = ""
		}
	}
	for i := range s.variant.Sections {
		schema := &s.variant.Sections[i]
		doc.Sections[schema.Key] = []types.Entry{template(schema, doc.NextID)}
		doc.NextID++
	}
	return doc
}

// template builds an empty entry for the schema.
func template(schema *types.SectionSchema, id types.ID) types.Entry {
	e := types.Entry{
		ID:     id,
		Fields: make(map[string]string, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		e.Fields[f] = ""
	}
	if len(schema.PointFields) > 0 {
		e.Points = make(map[string][]string, len(schema.PointFields))
		for _, f := range schema.PointFields {
			e.Points[f] = []string{""}
		}
	}
	return e
}

// SetPersonalField replaces one personal info field.
func (s *Store) SetPersonalField(doc types.Document, field, value string) types.Document {
	p, ok := doc.Personal.With(field, value)
	if !ok {
		panic(violation("set_personal", "unknown personal field %q", field))
	}
	doc.Personal = p
	return doc
}

// SetText replaces a free-text block.
func (s *Store) SetText(doc types.Document, block, value string) types.Document {
	if s.variant.TextBlock(block) == nil {
		panic(violation("set_text", "variant %s has no text block %q", s.variant.Name, block))
	}
	text := make(map[string]string, len(doc.Text)+1)
	for k, v := range doc.Text {
		text[k] = v
	}
	text[block] = value
	doc.Text = text
	return doc
}

// SetEntryField replaces one scalar field of one entry. On the section's
// rating field the value is parsed and clamped; a blank value clears the
// rating and an unparseable one leaves the document unchanged.
func (s *Store) SetEntryField(doc types.Document, section string, index int, field, value string) types.Document {
	schema := s.mustSection("set_entry_field", section)

	if schema.IsRatingField(field) {
		if strings.TrimSpace(value) == "" {
			return s.withEntry(doc, "set_entry_field", section, index, func(e *types.Entry) {
				e.Rating = nil
			})
		}
		rating, ok := schema.Rating.Bounds.ParseRating(value)
		if !ok {
			mustIndex("set_entry_field", section, index, len(doc.Sections[section]))
			return doc
		}
		return s.SetRating(doc, section, index, rating)
	}

	if !schema.HasField(field) {
		panic(violation("set_entry_field", "section %s has no field %q", section, field))
	}
	return s.withEntry(doc, "set_entry_field", section, index, func(e *types.Entry) {
		e.Fields[field] = value
	})
}

// SetRating stores the rating of one entry, clamped to the schema bounds.
func (s *Store) SetRating(doc types.Document, section string, index int, value float64) types.Document {
	schema := s.mustSection("set_rating", section)
	if schema.Rating == nil {
		panic(violation("set_rating", "section %s has no rating field", section))
	}
	clamped := schema.Rating.Bounds.Clamp(value)
	return s.withEntry(doc, "set_rating", section, index, func(e *types.Entry) {
		e.Rating = &clamped
	})
}

// AddEntry appends an empty entry with a fresh identifier.
func (s *Store) AddEntry(doc types.Document, section string) types.Document {
	schema := s.mustSection("add_entry", section)

	entries := doc.Sections[section]
	updated := make([]types.Entry, len(entries), len(entries)+1)
	copy(updated, entries)
	updated = append(updated, template(schema, doc.NextID))

	doc.NextID++
	return replaceSection(doc, section, updated)
}

// RemoveEntry removes one entry. Removing the last remaining entry is a no-op.
func (s *Store) RemoveEntry(doc types.Document, section string, index int) types.Document {
	s.mustSection("remove_entry", section)
	entries := doc.Sections[section]
	mustIndex("remove_entry", section, index, len(entries))

	if len(entries) == 1 {
		return doc
	}

	updated := make([]types.Entry, 0, len(entries)-1)
	updated = append(updated, entries[:index]...)
	updated = append(updated, entries[index+1:]...)
	return replaceSection(doc, section, updated)
}

// SetPoint replaces one element of a point-list.
func (s *Store) SetPoint(doc types.Document, section string, index int, pointField string, pointIndex int, value string) types.Document {
	s.mustPointField("set_point", section, pointField)
	return s.withEntry(doc, "set_point", section, index, func(e *types.Entry) {
		points := e.Points[pointField]
		mustPointIndex("set_point", pointField, pointIndex, len(points))
		points[pointIndex] = value
	})
}

// AddPoint appends an empty element to a point-list.
func (s *Store) AddPoint(doc types.Document, section string, index int, pointField string) types.Document {
	s.mustPointField("add_point", section, pointField)
	return s.withEntry(doc, "add_point", section, index, func(e *types.Entry) {
		e.Points[pointField] = append(e.Points[pointField], "")
	})
}

// RemovePoint removes one element of a point-list. Removing the last element
// leaves a single empty string in its place.
func (s *Store) RemovePoint(doc types.Document, section string, index int, pointField string, pointIndex int) types.Document {
	s.mustPointField("remove_point", section, pointField)
	return s.withEntry(doc, "remove_point", section, index, func(e *types.Entry) {
		points := e.Points[pointField]
		mustPointIndex("remove_point", pointField, pointIndex, len(points))

		kept := make([]string, 0, len(points))
		kept = append(kept, points[:pointIndex]...)
		kept = append(kept, points[pointIndex+1:]...)
		if len(kept) == 0 {
			kept = []string{""}
		}
		e.Points[pointField] = kept
	})
}

// AddSkill appends a skill with the trimmed label. Blank labels are ignored.
func (s *Store) AddSkill(doc types.Document, label string) types.Document {
	label = strings.TrimSpace(label)
	if label == "" {
		return doc
	}

	skills := make([]types.Skill, len(doc.Skills), len(doc.Skills)+1)
	copy(skills, doc.Skills)
	doc.Skills = append(skills, types.Skill{ID: doc.NextID, Label: label})
	doc.NextID++
	return doc
}

// RemoveSkill removes the skill with the given identifier, if present.
func (s *Store) RemoveSkill(doc types.Document, id types.ID) types.Document {
	pos := -1
	for i, sk := range doc.Skills {
		if sk.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return doc
	}

	skills := make([]types.Skill, 0, len(doc.Skills)-1)
	skills = append(skills, doc.Skills[:pos]...)
	doc.Skills = append(skills, doc.Skills[pos+1:]...)
	return doc
}

// withEntry copies the section and the addressed entry, lets fn edit the copy
// and returns a document holding the result.
func (s *Store) withEntry(doc types.Document, op, section string, index int, fn func(e *types.Entry)) types.Document {
	s.mustSection(op, section)
	entries := doc.Sections[section]
	mustIndex(op, section, index, len(entries))

	updated := make([]types.Entry, len(entries))
	copy(updated, entries)

	e := updated[index].Clone()
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if e.Points == nil {
		e.Points = map[string][]string{}
	}
	fn(&e)
	updated[index] = e

	return replaceSection(doc, section, updated)
}

func replaceSection(doc types.Document, section string, entries []types.Entry) types.Document {
	sections := make(map[string][]types.Entry, len(doc.Sections))
	for k, v := range doc.Sections {
		sections[k] = v
	}
	sections[section] = entries
	doc.Sections = sections
	return doc
}

func (s *Store) mustSection(op, section string) *types.SectionSchema {
	schema := s.variant.Section(section)
	if schema == nil {
		panic(violation(op, "variant %s has no section %q", s.variant.Name, section))
	}
	return schema
}

func (s *Store) mustPointField(op, section, pointField string) {
	if !s.mustSection(op, section).HasPointField(pointField) {
		panic(violation(op, "section %s has no point list %q", section, pointField))
	}
}

func mustIndex(op, section string, index, n int) {
	if index < 0 || index >= n {
		panic(violation(op, "entry index %d out of range for section %s (%d entries)", index, section, n))
	}
}

func mustPointIndex(op, pointField string, index, n int) {
	if index < 0 || index >= n {
		panic(violation(op, "point index %d out of range for %s (%d points)", index, pointField, n))
	}
}
