// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Personal info field names accepted by the store.
const (
	PersonalName     = "name"
	PersonalPhone    = "phone"
	PersonalEmail    = "email"
	PersonalLocation = "location"
)

// PersonalFields lists the personal info fields in contact order after the name.
var PersonalFields = []string{PersonalName, PersonalPhone, PersonalEmail, PersonalLocation}

// PersonalInfo is the header record of a document. All fields are optional.
type PersonalInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// Get returns the named field and whether the name is known.
func (p PersonalInfo) Get(field string) (string, bool) {
	switch field {
	case PersonalName:
		return p.Name, true
	case PersonalPhone:
		return p.Phone, true
	case PersonalEmail:
		return p.Email, true
	case PersonalLocation:
		return p.Location, true
	}
	return "", false
}

// With returns a copy with the named field replaced. ok is false for unknown fields.
func (p PersonalInfo) With(field, value string) (PersonalInfo, bool) {
	switch field {
	case PersonalName:
		p.Name = value
	case PersonalPhone:
		p.Phone = value
	case PersonalEmail:
		p.Email = value
	case PersonalLocation:
		p.Location = value
	default:
		return p, false
	}
	return p, true
}

// ID identifies an entry or a skill. IDs come from the document's sequence and
// are never reused.
type ID int64

// Entry is one record within a section.
type Entry struct {
	ID     ID                  `json:"id"`
	Fields map[string]string   `json:"fields"`
	Points map[string][]string `json:"points,omitempty"`
	Rating *float64            `json:"rating,omitempty"`
}

// Skill is a flat label attached to the document.
type Skill struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
}

// Document is the root aggregate being authored.
type Document struct {
	Variant  string             `json:"variant"`
	Personal PersonalInfo       `json:"personal"`
	Text     map[string]string  `json:"text,omitempty"`
	Sections map[string][]Entry `json:"sections"`
	Skills   []Skill            `json:"skills"`
	NextID   ID                 `json:"next_id"`
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := Entry{ID: e.ID}
	if e.Fields != nil {
		out.Fields = make(map[string]string, len(e.Fields))
		for k, v := range e.Fields {
			out.Fields[k] = v
		}
	}
	if e.Points != nil {
		out.Points = make(map[string][]string, len(e.Points))
		for k, v := range e.Points {
			points := make([]string, len(v))
			copy(points, v)
			out.Points[k] = points
		}
	}
	if e.Rating != nil {
		r := *e.Rating
		out.Rating = &r
	}
	return out
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.Text != nil {
		out.Text = make(map[string]string, len(d.Text))
		for k, v := range d.Text {
			out.Text[k] = v
		}
	}
	if d.Sections != nil {
		out.Sections = make(map[string][]Entry, len(d.Sections))
		for k, entries := range d.Sections {
			cloned := make([]Entry, len(entries))
			for i, e := range entries {
				cloned[i] = e.Clone()
			}
			out.Sections[k] = cloned
		}
	}
	// an empty skill list stays an empty array in JSON
	if d.Skills != nil {
		out.Skills = make([]Skill, len(d.Skills))
		copy(out.Skills, d.Skills)
	}
	return out
}
