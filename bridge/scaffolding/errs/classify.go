package errs

import (
	"context"
	"errors"

	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/sdk/validation"
)

// Classify maps an error returned by the core layer onto an Error with the
// matching code. Errors it does not recognize become InternalOnlyLog so the
// cause is logged but never sent to the caller.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var e *Error
	if fields, ok := validation.AsFieldErrors(err); ok {
		e = newError(Unprocessable, "Validation failed")
		e.Fields = fields
	} else {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			e = newError(NotFound, "Record not found")
		case errors.Is(err, repositories.ErrConflict):
			e = newError(AlreadyExists, "Record already exists")
		case errors.Is(err, fop.ErrInvalidSortColumn):
			e = newError(InvalidArgument, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			e = newError(DeadlineExceeded, "Request timed out")
		case errors.Is(err, context.Canceled):
			e = newError(Canceled, "Request canceled")
		case errors.Is(err, fop.ErrStorageUnavailable):
			e = newError(Unavailable, "Storage unavailable")
		default:
			e = newError(InternalOnlyLog, err.Error())
		}
	}

	e.err = err
	return e
}
