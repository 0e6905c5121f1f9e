// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Kinds of view sections.
const (
	KindText    = "text"
	KindEntries = "entries"
	KindSkills  = "skills"
)

// View is the read-only, display-formatted derivation of a document.
type View struct {
	Variant  string        `json:"variant"`
	Title    string        `json:"title"`
	Name     string        `json:"name"`
	Contact  string        `json:"contact"`
	Sections []ViewSection `json:"sections"`
}

// ViewSection is one visible section. Exactly one of Body, Entries or Items is
// populated, according to Kind.
type ViewSection struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Kind    string      `json:"kind"`
	Body    string      `json:"body,omitempty"`
	Entries []ViewEntry `json:"entries,omitempty"`
	Items   []string    `json:"items,omitempty"`
}

// ViewEntry is one entry of a visible section with formatted display values.
type ViewEntry struct {
	ID         ID           `json:"id"`
	Heading    string       `json:"heading"`
	Subheading string       `json:"subheading,omitempty"`
	Dates      string       `json:"dates,omitempty"`
	Details    []ViewDetail `json:"details,omitempty"`
	Lists      []ViewList   `json:"lists,omitempty"`
}

// ViewDetail is a labelled scalar value.
type ViewDetail struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ViewList is a filtered point-list.
type ViewList struct {
	Field string   `json:"field"`
	Label string   `json:"label"`
	Items []string `json:"items"`
}
