// Package fault defines the closed set of failure kinds produced by the
// catalog. Every controller and repository error is one of these kinds, so
// the HTTP layer can translate any failure into the error envelope without
// inspecting free-form error strings.
package fault

import (
	"errors"
	"net/http"
	"strings"
)

// Kind tags a failure with its place in the error contract.
type Kind int

const (
	// Validation is a field constraint violation on the entity itself.
	Validation Kind = iota + 1
	// ReferenceNotFound is a book reference that does not resolve.
	ReferenceNotFound
	// MalformedID is an identifier the store cannot accept.
	MalformedID
	// NotFound is a well-formed identifier with no matching record.
	NotFound
	// Internal is everything else: store unavailable, unexpected failure.
	Internal
)

/* Error carries structured context alongside the kind so messages can name
 * the offending field or identifier. It is data, not behavior: handlers
 * never branch on anything but Kind.
 */
type Error struct {
	Kind       Kind
	Entity     string   // "Author", "Category", "Book"
	Field      string   // reference field name, e.g. "authorId"
	ID         string   // offending identifier value
	Violations []string // field constraint violations, in input order
}

func (e *Error) Error() string {
	switch e.Kind {
	case Validation:
		return strings.Join(e.Violations, ", ")
	case ReferenceNotFound:
		return "Invalid " + e.Field + ". " + e.Entity + " not found."
	case MalformedID:
		return "Invalid id: " + e.ID
	case NotFound:
		return e.Entity + " not found"
	}
	return "Internal Server Error"
}

// StatusCode maps the kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, ReferenceNotFound, MalformedID:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// NewValidation reports one or more field constraint violations.
func NewValidation(violations ...string) *Error {
	return &Error{Kind: Validation, Violations: violations}
}

// NewReferenceNotFound reports an unresolved book reference, naming the
// field that carried it and the entity it should have resolved to.
func NewReferenceNotFound(field, entity, id string) *Error {
	return &Error{Kind: ReferenceNotFound, Field: field, Entity: entity, ID: id}
}

// NewMalformedID reports an identifier the store rejected before lookup.
func NewMalformedID(entity, id string) *Error {
	return &Error{Kind: MalformedID, Entity: entity, ID: id}
}

// NewNotFound reports a miss for a well-formed identifier.
func NewNotFound(entity string) *Error {
	return &Error{Kind: NotFound, Entity: entity}
}

// From classifies any error. Wrapped *Error values keep their kind;
// everything else is Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: Internal}
}

// IsKind reports whether err is (or wraps) a fault of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
