// Package server provides the HTTP API for editing, previewing and exporting CV documents.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/variant"
)

// ErrInvalidAccessKey indicates a missing or wrong access key on session creation
type ErrInvalidAccessKey struct{}

func (e *ErrInvalidAccessKey) Error() string {
	return "invalid access key"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr   *ErrValidation
		accessErr       *ErrInvalidAccessKey
		notFoundErr     *session.NotFoundError
		limitErr        *session.LimitError
		unknownErr      *variant.UnknownVariantError
		opErr           *document.OpValidationError
		preconditionErr *document.PreconditionError
		normalizeErr    *document.NormalizeError
		exportErr       *export.ExportError
		schemaErr       *schemas.ValidationError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unknownErr), errors.As(err, &opErr):
		return http.StatusBadRequest
	case errors.As(err, &accessErr):
		return http.StatusUnauthorized
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &preconditionErr), errors.As(err, &normalizeErr), errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &limitErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
