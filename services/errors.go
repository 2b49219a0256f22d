package services

import (
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNotFound = stderrors.New("record not found")

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports submitted input that could not be coerced to its
// declared type or that is missing a required field.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Error)
		}
		return strings.Join(msgs, "; ")
	}
	if e.Err == nil {
		return "invalid input"
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConstraintError reports a uniqueness or referential constraint that the
// write would have violated.
type ConstraintError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err == nil {
		return "constraint violated"
	}
	return e.Err.Error()
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// EnrollOutcome is the normal result of an enroll request.
type EnrollOutcome int

const (
	Enrolled EnrollOutcome = iota
	AlreadyEnrolled
)

func (o EnrollOutcome) String() string {
	if o == AlreadyEnrolled {
		return "already enrolled"
	}
	return "enrolled"
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return stderrors.As(err, &vErr)
}

func IsConstraint(err error) bool {
	var cErr *ConstraintError
	return stderrors.As(err, &cErr)
}

func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// translateWriteError maps driver constraint errors onto the service
// taxonomy. field names the column guarded by the unique index the write
// touches and msg is the user-facing text for a duplicate.
func translateWriteError(err error, field, msg string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return &ConstraintError{Field: field, Message: msg, Err: err}
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConstraintError{Message: "referenced record does not exist", Err: err}
	}
	return err
}

// lookupError wraps gorm.ErrRecordNotFound as ErrNotFound for the given
// entity and id.
func lookupError(err error, entity string, id uint) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(ErrNotFound, "%s %d", entity, id)
	}
	return errors.Wrapf(err, "get %s %d", entity, id)
}
