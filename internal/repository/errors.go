// Package repository defines error types that are reused across multiple
// repositories. Every failure a repository returns is an *Error carrying
// one of three kinds so handlers can distinguish caller mistakes, missing
// rows and storage failures. The sentinel values below match any *Error of
// the same kind through errors.Is, e.g. errors.Is(err, ErrNotFound).
package repository

import (
	"errors"
	"fmt"

	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/model"
)

// Kind classifies a repository failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is the single error type returned by repositories.
type Error struct {
	Kind    Kind
	Op      string // e.g. "venue.create"
	Field   string // offending field for validation failures
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + " " + msg
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil && e.Kind == KindPersistence {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind when target is one of the
// package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Field == "" && t.Kind == e.Kind
}

// ErrValidation is returned when caller-supplied data breaks a domain rule:
// an empty required field, a duplicate name or a dangling reference.
// Handlers should translate this into an HTTP 400 response.
var ErrValidation = &Error{Kind: KindValidation, Message: "validation failed"}

// ErrNotFound is returned when the referenced id does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = &Error{Kind: KindNotFound, Message: "not found"}

// ErrPersistence is returned when the storage engine failed. The mutation
// has been rolled back.
var ErrPersistence = &Error{Kind: KindPersistence, Message: "storage failure"}

func invalid(op, field, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Message: message}
}

func notFound(op, entity string, id int64) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

func persistence(op string, cause error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Message: "storage failure", Cause: cause}
}

// fieldError converts a model validation failure.
func fieldError(op string, err error) error {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return &Error{Kind: KindValidation, Op: op, Field: fe.Field, Message: fe.Reason, Cause: err}
	}
	return &Error{Kind: KindValidation, Op: op, Message: err.Error(), Cause: err}
}

// classify maps a raw storage error into the repository taxonomy. Errors
// that are already classified pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	switch {
	case database.IsUniqueViolation(err):
		return &Error{Kind: KindValidation, Op: op, Field: "name", Message: "is already taken", Cause: err}
	case database.IsForeignKeyViolation(err):
		return &Error{Kind: KindValidation, Op: op, Message: "references a missing venue or artist", Cause: err}
	}
	return persistence(op, err)
}
