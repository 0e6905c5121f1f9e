package variant

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterStructValidation(variantStructLevel, types.Variant{})
		validate.RegisterStructValidation(sectionStructLevel, types.SectionSchema{})
	})
	return validate
}

// Validate checks a variant definition for structural and referential problems.
func Validate(v *types.Variant) error {
	if v == nil {
		return &ValidationError{Problems: []string{"variant is nil"}}
	}

	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate variant %q: %w", v.Name, err)
	}

	out := &ValidationError{Variant: v.Name}
	for _, fe := range verrs {
		problem := fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			problem += " " + fe.Param()
		}
		out.Problems = append(out.Problems, problem)
	}
	return out
}

// variantStructLevel enforces key uniqueness and a complete layout.
func variantStructLevel(sl validator.StructLevel) {
	v := sl.Current().Interface().(types.Variant)

	keys := make(map[string]bool)
	claim := func(key, path string) {
		if key == types.SkillsKey {
			sl.ReportError(key, path, path, "reserved_key", key)
			return
		}
		if keys[key] {
			sl.ReportError(key, path, path, "unique_key", key)
			return
		}
		keys[key] = true
	}
	for i, b := range v.TextBlocks {
		claim(b.Key, fmt.Sprintf("text_blocks[%d].key", i))
	}
	for i, s := range v.Sections {
		claim(s.Key, fmt.Sprintf("sections[%d].key", i))
	}

	if len(v.Layout) == 0 {
		return
	}

	keys[types.SkillsKey] = true
	seen := make(map[string]bool, len(v.Layout))
	for i, key := range v.Layout {
		path := fmt.Sprintf("layout[%d]", i)
		switch {
		case !keys[key]:
			sl.ReportError(key, path, path, "known_key", key)
		case seen[key]:
			sl.ReportError(key, path, path, "unique_key", key)
		}
		seen[key] = true
	}
	for key := range keys {
		if !seen[key] {
			sl.ReportError(v.Layout, "layout", "Layout", "includes", key)
		}
	}
}

// sectionStructLevel checks that every role and list refers to a declared field.
func sectionStructLevel(sl validator.StructLevel) {
	s := sl.Current().Interface().(types.SectionSchema)

	scalar := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if scalar[f] {
			sl.ReportError(f, "fields", "Fields", "unique_field", f)
		}
		scalar[f] = true
	}

	points := make(map[string]bool, len(s.PointFields))
	for _, f := range s.PointFields {
		if scalar[f] || points[f] {
			sl.ReportError(f, "point_fields", "PointFields", "unique_field", f)
		}
		points[f] = true
	}

	if s.Rating != nil {
		if scalar[s.Rating.Field] || points[s.Rating.Field] {
			sl.ReportError(s.Rating.Field, "rating.field", "Rating", "unique_field", s.Rating.Field)
		}
		b := s.Rating.Bounds
		if b.Min >= b.Max {
			sl.ReportError(b, "rating.bounds", "Rating", "min_below_max", "")
		}
		if b.Step < 0 || b.Step > b.Max-b.Min {
			sl.ReportError(b.Step, "rating.bounds.step", "Rating", "step_in_range", "")
		}
	}

	roles := []struct{ name, value string }{
		{"heading", s.Heading},
		{"subheading", s.Subheading},
		{"date_from", s.DateFrom},
		{"date_to", s.DateTo},
	}
	for _, r := range roles {
		if r.value != "" && !scalar[r.value] {
			sl.ReportError(r.value, r.name, r.name, "declared_field", r.value)
		}
	}
	if (s.DateFrom == "") != (s.DateTo == "") {
		sl.ReportError(s.DateFrom, "date_from", "DateFrom", "paired_with", "date_to")
	}

	for _, f := range s.DateFields {
		if !scalar[f] {
			sl.ReportError(f, "date_fields", "DateFields", "declared_field", f)
		}
	}
	for _, f := range s.ContentFields {
		if !scalar[f] && !points[f] {
			sl.ReportError(f, "content_fields", "ContentFields", "declared_field", f)
		}
	}
}
