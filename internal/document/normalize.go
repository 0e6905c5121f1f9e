package document

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// NormalizeError reports a snapshot that cannot belong to the store's variant.
type NormalizeError struct {
	Variant string
	Message string
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("document does not fit variant %s: %s", e.Variant, e.Message)
}

// Normalize restores the document invariants on a snapshot read from outside
// the store: missing sections, fields and point lists are filled with empty
// templates, ratings are clamped, blank skills are dropped and the identifier
// sequence is moved past every identifier in use. Snapshots naming another
// variant, unknown sections, unknown fields or duplicate identifiers are rejected.
func (s *Store) Normalize(doc types.Document) (types.Document, error) {
	fail := func(format string, args ...any) (types.Document, error) {
		return types.Document{}, &NormalizeError{Variant: s.variant.Name, Message: fmt.Sprintf(format, args...)}
	}

	if doc.Variant != "" && doc.Variant != s.variant.Name {
		return fail("snapshot is for variant %q", doc.Variant)
	}
	out := doc.Clone()
	out.Variant = s.variant.Name

	for key := range out.Text {
		if s.variant.TextBlock(key) == nil {
			return fail("unknown text block %q", key)
		}
	}
	for key := range out.Sections {
		if s.variant.Section(key) == nil {
			return fail("unknown section %q", key)
		}
	}

	seen := make(map[types.ID]bool)
	var maxID types.ID
	track := func(id types.ID) bool {
		if id <= 0 || seen[id] {
			return false
		}
		seen[id] = true
		if id > maxID {
			maxID = id
		}
		return true
	}

	if len(s.variant.TextBlocks) > 0 {
		if out.Text == nil {
			out.Text = make(map[string]string, len(s.variant.TextBlocks))
		}
		for _, b := range s.variant.TextBlocks {
			if _, ok := out.Text[b.Key]; !ok {
				out.Text[b.Key] = ""
			}
		}
	}

	if out.Sections == nil {
		out.Sections = make(map[string][]types.Entry, len(s.variant.Sections))
	}
	for i := range s.variant.Sections {
		schema := &s.variant.Sections[i]
		for j := range out.Sections[schema.Key] {
			e := &out.Sections[schema.Key][j]
			if !track(e.ID) {
				return fail("entry id %d in section %s is invalid or duplicated", e.ID, schema.Key)
			}
			if err := normalizeEntry(schema, e); err != nil {
				return fail("%v", err)
			}
		}
	}

	skills := make([]types.Skill, 0, len(out.Skills))
	for _, sk := range out.Skills {
		sk.Label = strings.TrimSpace(sk.Label)
		if sk.Label == "" {
			continue
		}
		if !track(sk.ID) {
			return fail("skill id %d is invalid or duplicated", sk.ID)
		}
		skills = append(skills, sk)
	}
	out.Skills = skills

	if out.NextID <= maxID {
		out.NextID = maxID + 1
	}

	for i := range s.variant.Sections {
		schema := &s.variant.Sections[i]
		if len(out.Sections[schema.Key]) == 0 {
			out.Sections[schema.Key] = []types.Entry{template(schema, out.NextID)}
			out.NextID++
		}
	}
	return out, nil
}

func normalizeEntry(schema *types.SectionSchema, e *types.Entry) error {
	if e.Fields == nil {
		e.Fields = make(map[string]string, len(schema.Fields))
	}
	for name := range e.Fields {
		if !schema.HasField(name) {
			return fmt.Errorf("section %s has no field %q", schema.Key, name)
		}
	}
	for _, f := range schema.Fields {
		if _, ok := e.Fields[f]; !ok {
			e.Fields[f] = ""
		}
	}

	for name := range e.Points {
		if !schema.HasPointField(name) {
			return fmt.Errorf("section %s has no point list %q", schema.Key, name)
		}
	}
	if len(schema.PointFields) > 0 {
		if e.Points == nil {
			e.Points = make(map[string][]string, len(schema.PointFields))
		}
		for _, f := range schema.PointFields {
			if len(e.Points[f]) == 0 {
				e.Points[f] = []string{""}
			}
		}
	}

	if e.Rating != nil {
		if schema.Rating == nil {
			return fmt.Errorf("section %s has no rating field", schema.Key)
		}
		clamped := schema.Rating.Bounds.Clamp(*e.Rating)
		e.Rating = &clamped
	}
	return nil
}
