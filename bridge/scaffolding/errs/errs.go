// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/jrazmi/backoffice/sdk/validation"
)

// Error represents an error in the system.
type Error struct {
	Message  string                 `json:"message"`
	Code     ErrCode                `json:"code"`
	Fields   validation.FieldErrors `json:"errors,omitempty"`
	FuncName string                 `json:"-"`
	FileName string                 `json:"-"`
	err      error
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	e := newError(code, err.Error())
	e.err = err
	return e
}

// Newf constructs an error based on a error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

// NewFieldErrors constructs an Unprocessable error carrying field errors.
func NewFieldErrors(fields validation.FieldErrors) *Error {
	e := newError(Unprocessable, "Validation failed")
	e.Fields = fields
	e.err = fields
	return e
}

func newError(code ErrCode, message string) *Error {
	pc, filename, line, _ := runtime.Caller(2)

	return &Error{
		Code:     code,
		Message:  message,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error the Error was built from, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Encode implements the encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus implements the web package httpStatus interface so the
// web framework can use the correct http status.
func (e *Error) HTTPStatus() int {
	return httpStatus[e.Code]
}

// Equal provides support for the go-cmp package and testing.
func (e *Error) Equal(e2 *Error) bool {
	return e.Code == e2.Code && e.Message == e2.Message
}

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the Error pointer.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
