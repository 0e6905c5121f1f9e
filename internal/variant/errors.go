package variant

import (
	"fmt"
	"strings"
)

// LoadError represents an error reading or decoding a variant definition file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError lists every problem found in a variant definition
type ValidationError struct {
	Variant  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid variant %q: %s", e.Variant, strings.Join(e.Problems, "; "))
}

// UnknownVariantError is returned when a variant name is not registered
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant: %s", e.Name)
}

// DuplicateVariantError is returned when registering a name twice
type DuplicateVariantError struct {
	Name string
}

func (e *DuplicateVariantError) Error() string {
	return fmt.Sprintf("variant already registered: %s", e.Name)
}
