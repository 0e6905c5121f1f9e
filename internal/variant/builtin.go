// Package variant defines document variants (work résumé, scholarship CV) and
// loads custom variant definitions from JSON or YAML files.
package variant

import (
	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/types"
)

// Built-in variant names.
const (
	Work        = "work"
	Scholarship = "scholarship"
)

// Default is the variant used when none is configured.
const Default = Work

// WorkVariant returns the job-application résumé definition.
func WorkVariant() *types.Variant {
	return &types.Variant{
		Name:          Work,
		Description:   "Job applications and professional roles; focused on technical skills and project experience.",
		Label:         "Resume",
		TitleFallback: "CV",
		SkillsTitle:   "Skills",
		Sections: []types.SectionSchema{
			{
				Key:        "education",
				Title:      "Education",
				Fields:     []string{"degree", "institution", "from", "to", "grade"},
				Heading:    "institution",
				Subheading: "degree",
				DateFrom:   "from",
				DateTo:     "to",
				Labels: map[string]string{
					"degree":      "Degree / Qualification",
					"institution": "Institution",
					"from":        "Start Date",
					"to":          "End Date",
					"grade":       "Grade",
				},
			},
			{
				Key:         "work_experience",
				Title:       "Work Experience",
				Fields:      []string{"role", "company", "from", "to"},
				PointFields: []string{"points"},
				Heading:     "role",
				Subheading:  "company",
				DateFrom:    "from",
				DateTo:      "to",
				Labels: map[string]string{
					"role":    "Role / Job Title",
					"company": "Company / Organization",
					"from":    "Start Date",
					"to":      "End Date",
					"points":  "Responsibilities / Achievements",
				},
			},
			{
				Key:        "certifications",
				Title:      "Certifications",
				Fields:     []string{"title", "issuer", "from", "to"},
				Heading:    "title",
				Subheading: "issuer",
				DateFrom:   "from",
				DateTo:     "to",
				Labels: map[string]string{
					"title":  "Certification Title",
					"issuer": "Issuing Organization",
					"from":   "Start Date",
					"to":     "End Date",
				},
			},
			{
				Key:      "volunteering",
				Title:    "Volunteering",
				Fields:   []string{"role", "description", "from", "to"},
				Heading:  "role",
				DateFrom: "from",
				DateTo:   "to",
				Labels: map[string]string{
					"role":        "Role",
					"description": "Description",
					"from":        "Start Date",
					"to":          "End Date",
				},
			},
			{
				Key:      "awards",
				Title:    "Awards",
				Fields:   []string{"title", "from", "to"},
				Heading:  "title",
				DateFrom: "from",
				DateTo:   "to",
				Labels: map[string]string{
					"title": "Award Title",
					"from":  "Date Awarded (From)",
					"to":    "Date Awarded (To)",
				},
			},
			{
				Key:      "academic_support",
				Title:    "Academic Support",
				Fields:   []string{"role", "description", "from", "to"},
				Heading:  "role",
				DateFrom: "from",
				DateTo:   "to",
				Labels: map[string]string{
					"role":        "Role",
					"description": "Description",
					"from":        "Start Date",
					"to":          "End Date",
				},
			},
		},
		Layout: []string{
			"education", "work_experience", types.SkillsKey,
			"certifications", "volunteering", "awards", "academic_support",
		},
	}
}

// ScholarshipVariant returns the academic CV definition.
func ScholarshipVariant() *types.Variant {
	return &types.Variant{
		Name:          Scholarship,
		Description:   "Academic opportunities, scholarships and research programs; focused on education and certifications.",
		Label:         "CV",
		TitleFallback: "Scholarship",
		SkillsTitle:   "Skills & Competencies",
		TextBlocks: []types.TextBlock{
			{Key: "professional_summary", Title: "Professional Summary"},
			{Key: "research_interests", Title: "Research Interests"},
		},
		Sections: []types.SectionSchema{
			{
				Key:    "education",
				Title:  "Education",
				Fields: []string{"institution", "location", "degree", "from", "to", "grade", "thesis"},
				Rating: &types.RatingField{
					Field:  "gpa",
					Label:  "GPA",
					Bounds: fields.Bounds{Min: 1, Max: 5, Step: 0.1},
				},
				ContentFields: []string{"institution", "degree", "from", "to"},
				Heading:       "institution",
				Subheading:    "degree",
				DateFrom:      "from",
				DateTo:        "to",
				Labels: map[string]string{
					"institution": "Institution",
					"location":    "Location",
					"degree":      "Degree",
					"from":        "Start Date",
					"to":          "End Date",
					"grade":       "Final Grade",
					"thesis":      "Thesis",
				},
			},
			{
				Key:           "research_experience",
				Title:         "Research Experience",
				Fields:        []string{"role", "institution", "from", "to"},
				PointFields:   []string{"points"},
				ContentFields: []string{"role", "institution", "points"},
				Heading:       "role",
				Subheading:    "institution",
				DateFrom:      "from",
				DateTo:        "to",
				Labels: map[string]string{
					"role":        "Role",
					"institution": "Institution",
					"points":      "Key Contributions",
				},
			},
			{
				Key:           "industrial_experience",
				Title:         "Industrial Experience",
				Fields:        []string{"role", "organization", "from", "to"},
				PointFields:   []string{"points"},
				ContentFields: []string{"role", "organization", "points"},
				Heading:       "role",
				Subheading:    "organization",
				DateFrom:      "from",
				DateTo:        "to",
				Labels: map[string]string{
					"role":         "Role",
					"organization": "Organization",
					"points":       "Key Contributions",
				},
			},
			{
				Key:           "certifications",
				Title:         "Certifications",
				Fields:        []string{"title", "organization", "year"},
				PointFields:   []string{"points"},
				ContentFields: []string{"title", "organization", "year"},
				Heading:       "title",
				Subheading:    "organization",
				DateFields:    []string{"year"},
				Labels: map[string]string{
					"title":        "Certification Title",
					"organization": "Issuing Organization",
					"year":         "Date",
					"points":       "Details",
				},
			},
			{
				Key:         "leadership",
				Title:       "Volunteering & Leadership",
				Fields:      []string{"role", "organization"},
				PointFields: []string{"points"},
				Heading:     "role",
				Subheading:  "organization",
				Labels: map[string]string{
					"role":         "Role",
					"organization": "Organization",
					"points":       "Contributions",
				},
			},
		},
	}
}

// Builtins returns fresh copies of every built-in variant.
func Builtins() []*types.Variant {
	return []*types.Variant{WorkVariant(), ScholarshipVariant()}
}
