// Package preview derives the display-formatted view of a document. Projection
// is pure: the same document always yields an equal view, and malformed values
// degrade to empty strings instead of failing.
package preview

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/types"
)

const defaultSkillsTitle = "Skills"

// Projector maps documents of one variant to views.
type Projector struct {
	variant *types.Variant
}

// NewProjector creates a projector for the given variant.
func NewProjector(v *types.Variant) *Projector {
	return &Projector{variant: v}
}

// Project builds the view of doc. Sections without content are omitted;
// entries of sections the variant does not declare are ignored.
func (p *Projector) Project(doc types.Document) types.View {
	view := types.View{
		Variant:  p.variant.Name,
		Title:    Title(doc.Personal.Name, p.variant),
		Name:     strings.TrimSpace(doc.Personal.Name),
		Contact:  ContactLine(doc.Personal),
		Sections: make([]types.ViewSection, 0, len(p.variant.Sections)+len(p.variant.TextBlocks)+1),
	}

	for _, key := range p.variant.Order() {
		if key == types.SkillsKey {
			if s, ok := p.skills(doc.Skills); ok {
				view.Sections = append(view.Sections, s)
			}
			continue
		}
		if block := p.variant.TextBlock(key); block != nil {
			if body := strings.TrimSpace(doc.Text[key]); body != "" {
				view.Sections = append(view.Sections, types.ViewSection{
					Key:   block.Key,
					Title: block.Title,
					Kind:  types.KindText,
					Body:  body,
				})
			}
			continue
		}
		if schema := p.variant.Section(key); schema != nil {
			if s, ok := projectSection(schema, doc.Sections[key]); ok {
				view.Sections = append(view.Sections, s)
			}
		}
	}
	return view
}

func (p *Projector) skills(skills []types.Skill) (types.ViewSection, bool) {
	items := make([]string, 0, len(skills))
	for _, sk := range skills {
		if !fields.IsBlank(sk.Label) {
			items = append(items, strings.TrimSpace(sk.Label))
		}
	}
	if len(items) == 0 {
		return types.ViewSection{}, false
	}

	title := p.variant.SkillsTitle
	if title == "" {
		title = defaultSkillsTitle
	}
	return types.ViewSection{Key: types.SkillsKey, Title: title, Kind: types.KindSkills, Items: items}, true
}

func projectSection(schema *types.SectionSchema, entries []types.Entry) (types.ViewSection, bool) {
	if !HasContent(entries, schema.VisibilityFields()) {
		return types.ViewSection{}, false
	}

	out := types.ViewSection{
		Key:     schema.Key,
		Title:   schema.Title,
		Kind:    types.KindEntries,
		Entries: make([]types.ViewEntry, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, projectEntry(schema, e))
	}
	return out, true
}

func projectEntry(schema *types.SectionSchema, e types.Entry) types.ViewEntry {
	out := types.ViewEntry{
		ID:         e.ID,
		Heading:    field(e, schema.Heading),
		Subheading: field(e, schema.Subheading),
		Dates:      dates(schema, e),
	}

	placed := map[string]bool{schema.Heading: true, schema.Subheading: true, schema.DateFrom: true, schema.DateTo: true}
	for _, f := range schema.DateFields {
		placed[f] = true
	}

	for _, f := range schema.Fields {
		if placed[f] {
			continue
		}
		if v := field(e, f); v != "" {
			out.Details = append(out.Details, types.ViewDetail{Field: f, Label: schema.Label(f), Value: v})
		}
	}

	if schema.Rating != nil && e.Rating != nil {
		label := schema.Rating.Label
		if label == "" {
			label = schema.Label(schema.Rating.Field)
		}
		out.Details = append(out.Details, types.ViewDetail{
			Field: schema.Rating.Field,
			Label: label,
			Value: schema.Rating.Bounds.FormatRating(*e.Rating),
		})
	}

	for _, f := range schema.PointFields {
		items := fields.NonBlank(e.Points[f])
		if len(items) == 0 {
			continue
		}
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		out.Lists = append(out.Lists, types.ViewList{Field: f, Label: schema.Label(f), Items: items})
	}
	return out
}

// dates renders the entry's date annotation: the from/to range followed by
// any standalone date fields, comma separated.
func dates(schema *types.SectionSchema, e types.Entry) string {
	parts := make([]string, 0, 1+len(schema.DateFields))
	if schema.DateFrom != "" || schema.DateTo != "" {
		if r := fields.FormatRange(e.Fields[schema.DateFrom], e.Fields[schema.DateTo]); r != "" {
			parts = append(parts, r)
		}
	}
	for _, f := range schema.DateFields {
		if d := fields.FormatDate(e.Fields[f]); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, ", ")
}

func field(e types.Entry, name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(e.Fields[name])
}

// HasContent reports whether any entry has a non-blank value in any of the
// designated fields. Point-list fields count when any element is non-blank.
func HasContent(entries []types.Entry, designated []string) bool {
	for _, e := range entries {
		for _, f := range designated {
			if v, ok := e.Fields[f]; ok && !fields.IsBlank(v) {
				return true
			}
			if list, ok := e.Points[f]; ok && !fields.IsBlankList(list) {
				return true
			}
		}
	}
	return false
}

// ContactLine joins phone, email and location, skipping blank ones.
func ContactLine(p types.PersonalInfo) string {
	return fields.JoinContact(p.Phone, p.Email, p.Location)
}

// Title derives the export title: "<name or fallback>_<label>".
func Title(name string, v *types.Variant) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = v.TitleFallback
	}
	return name + "_" + v.Label
}
