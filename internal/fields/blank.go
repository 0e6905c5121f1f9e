// Package fields holds the scalar field model shared by the document store and
// the preview projector: the blank predicate, date formatting, contact joining
// and rating bounds.
package fields

import "strings"

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsBlankList reports whether every element of list is blank.
// An empty or nil list is blank.
func IsBlankList(list []string) bool {
	for _, s := range list {
		if !IsBlank(s) {
			return false
		}
	}
	return true
}

// NonBlank returns the elements of list that are not blank, preserving order.
// The result is never nil.
func NonBlank(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if !IsBlank(s) {
			out = append(out, s)
		}
	}
	return out
}
