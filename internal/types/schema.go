// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/jonathan/cv-builder/internal/fields"

// SkillsKey is the layout key that places the skills section.
const SkillsKey = "skills"

// RatingField designates the single numeric field of a section.
type RatingField struct {
	Field  string        `json:"field" yaml:"field" validate:"required"`
	Label  string        `json:"label,omitempty" yaml:"label,omitempty"`
	Bounds fields.Bounds `json:"bounds" yaml:"bounds"`
}

// SectionSchema describes the entries of one section. The same schema drives
// the empty-entry template, the store's field checks and the preview.
type SectionSchema struct {
	Key           string            `json:"key" yaml:"key" validate:"required"`
	Title         string            `json:"title" yaml:"title" validate:"required"`
	Fields        []string          `json:"fields" yaml:"fields" validate:"dive,required"`
	PointFields   []string          `json:"point_fields,omitempty" yaml:"point_fields,omitempty" validate:"dive,required"`
	Rating        *RatingField      `json:"rating,omitempty" yaml:"rating,omitempty"`
	ContentFields []string          `json:"content_fields,omitempty" yaml:"content_fields,omitempty"`
	Heading       string            `json:"heading,omitempty" yaml:"heading,omitempty"`
	Subheading    string            `json:"subheading,omitempty" yaml:"subheading,omitempty"`
	DateFrom      string            `json:"date_from,omitempty" yaml:"date_from,omitempty"`
	DateTo        string            `json:"date_to,omitempty" yaml:"date_to,omitempty"`
	DateFields    []string          `json:"date_fields,omitempty" yaml:"date_fields,omitempty"`
	Labels        map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// HasField reports whether name is a scalar field of the section.
func (s *SectionSchema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// HasPointField reports whether name is a point-list field of the section.
func (s *SectionSchema) HasPointField(name string) bool {
	for _, f := range s.PointFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsRatingField reports whether name is the section's rating field.
func (s *SectionSchema) IsRatingField(name string) bool {
	return s.Rating != nil && s.Rating.Field == name
}

// VisibilityFields returns the fields checked by the visibility predicate:
// ContentFields when set, otherwise every scalar and point field.
func (s *SectionSchema) VisibilityFields() []string {
	if len(s.ContentFields) > 0 {
		return s.ContentFields
	}
	out := make([]string, 0, len(s.Fields)+len(s.PointFields))
	out = append(out, s.Fields...)
	return append(out, s.PointFields...)
}

// Label returns the display label of a field, defaulting to the field name.
func (s *SectionSchema) Label(field string) string {
	if l, ok := s.Labels[field]; ok && l != "" {
		return l
	}
	return field
}

// TextBlock is a free-text field of the document such as a summary.
type TextBlock struct {
	Key   string `json:"key" yaml:"key" validate:"required"`
	Title string `json:"title" yaml:"title" validate:"required"`
}

// Variant is a document kind: its sections, text blocks and export naming.
type Variant struct {
	Name          string          `json:"name" yaml:"name" validate:"required"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	Label         string          `json:"label" yaml:"label" validate:"required"`
	TitleFallback string          `json:"title_fallback" yaml:"title_fallback" validate:"required"`
	SkillsTitle   string          `json:"skills_title,omitempty" yaml:"skills_title,omitempty"`
	TextBlocks    []TextBlock     `json:"text_blocks,omitempty" yaml:"text_blocks,omitempty" validate:"dive"`
	Sections      []SectionSchema `json:"sections" yaml:"sections" validate:"required,min=1,dive"`
	Layout        []string        `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// Section returns the schema with the given key, or nil.
func (v *Variant) Section(key string) *SectionSchema {
	for i := range v.Sections {
		if v.Sections[i].Key == key {
			return &v.Sections[i]
		}
	}
	return nil
}

// TextBlock returns the text block with the given key, or nil.
func (v *Variant) TextBlock(key string) *TextBlock {
	for i := range v.TextBlocks {
		if v.TextBlocks[i].Key == key {
			return &v.TextBlocks[i]
		}
	}
	return nil
}

// Order returns the preview order of section, text block and skills keys.
// Without an explicit layout: text blocks, then sections, then skills.
func (v *Variant) Order() []string {
	if len(v.Layout) > 0 {
		return v.Layout
	}
	out := make([]string, 0, len(v.TextBlocks)+len(v.Sections)+1)
	for _, b := range v.TextBlocks {
		out = append(out, b.Key)
	}
	for _, s := range v.Sections {
		out = append(out, s.Key)
	}
	return append(out, SkillsKey)
}
