package errs

import (
	"encoding/json"
	"net/http"
)

// ErrCode represents an error code in the system.
type ErrCode struct {
	value int
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return codeNames[ec]
}

// UnmarshalText implement the unmarshal interface for JSON conversions.
func (ec *ErrCode) UnmarshalText(data []byte) error {
	errName := string(data)

	v, exists := codeNumbers[errName]
	if !exists {
		return &json.UnsupportedValueError{Str: errName}
	}

	*ec = v
	return nil
}

// MarshalText implement the marshal interface for JSON conversions.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// Equal provides support for the go-cmp package and testing.
func (ec ErrCode) Equal(ec2 ErrCode) bool {
	return ec.value == ec2.value
}

// The set of error codes the bridge layer returns.
var (
	OK                 = ErrCode{value: 0}
	Canceled           = ErrCode{value: 1}
	Unknown            = ErrCode{value: 2}
	InvalidArgument    = ErrCode{value: 3}
	DeadlineExceeded   = ErrCode{value: 4}
	NotFound           = ErrCode{value: 5}
	AlreadyExists      = ErrCode{value: 6}
	PermissionDenied   = ErrCode{value: 7}
	FailedPrecondition = ErrCode{value: 8}
	Unprocessable      = ErrCode{value: 9}
	Internal           = ErrCode{value: 10}
	Unavailable        = ErrCode{value: 11}
	Unauthenticated    = ErrCode{value: 12}
	InternalOnlyLog    = ErrCode{value: 13}
	ResourceExhausted  = ErrCode{value: 14}
)

var codeNumbers = map[string]ErrCode{
	"ok":                  OK,
	"canceled":            Canceled,
	"unknown":             Unknown,
	"invalid_argument":    InvalidArgument,
	"deadline_exceeded":   DeadlineExceeded,
	"not_found":           NotFound,
	"already_exists":      AlreadyExists,
	"permission_denied":   PermissionDenied,
	"failed_precondition": FailedPrecondition,
	"unprocessable":       Unprocessable,
	"internal":            Internal,
	"unavailable":         Unavailable,
	"unauthenticated":     Unauthenticated,
	"internal_only_log":   InternalOnlyLog,
	"resource_exhausted":  ResourceExhausted,
}

var codeNames map[ErrCode]string

func init() {
	codeNames = make(map[ErrCode]string, len(codeNumbers))
	for k, v := range codeNumbers {
		codeNames[v] = k
	}
}

// httpStatus maps error codes to http status codes.
var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	Canceled:           http.StatusGatewayTimeout,
	Unknown:            http.StatusInternalServerError,
	InvalidArgument:    http.StatusBadRequest,
	DeadlineExceeded:   http.StatusGatewayTimeout,
	NotFound:           http.StatusNotFound,
	AlreadyExists:      http.StatusConflict,
	PermissionDenied:   http.StatusForbidden,
	FailedPrecondition: http.StatusPreconditionFailed,
	Unprocessable:      http.StatusUnprocessableEntity,
	Internal:           http.StatusInternalServerError,
	Unavailable:        http.StatusServiceUnavailable,
	Unauthenticated:    http.StatusUnauthorized,
	InternalOnlyLog:    http.StatusInternalServerError,
	ResourceExhausted:  http.StatusTooManyRequests,
}
