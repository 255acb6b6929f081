package errs_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	fields := validation.FieldErrors{{Field: "email", Rule: "unique", Message: "The email has already been taken"}}

	tests := []struct {
		name   string
		err    error
		code   errs.ErrCode
		status int
	}{
		{"fields", fmt.Errorf("create: %w", fields), errs.Unprocessable, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("get: %w", repositories.ErrNotFound), errs.NotFound, http.StatusNotFound},
		{"conflict", errors.Join(repositories.ErrConflict, errors.New("dup")), errs.AlreadyExists, http.StatusConflict},
		{"sort", fmt.Errorf("%w: %q", fop.ErrInvalidSortColumn, "password"), errs.InvalidArgument, http.StatusBadRequest},
		{"storage", fmt.Errorf("%w: count: refused", fop.ErrStorageUnavailable), errs.Unavailable, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, errs.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, errs.Canceled, http.StatusGatewayTimeout},
		{"storage canceled", fmt.Errorf("%w: select: %w", fop.ErrStorageUnavailable, context.Canceled), errs.Canceled, http.StatusGatewayTimeout},
		{"storage deadline", fmt.Errorf("%w: count: %w", fop.ErrStorageUnavailable, context.DeadlineExceeded), errs.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), errs.InternalOnlyLog, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := errs.Classify(tt.err)
			require.NotNil(t, e)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.status, e.HTTPStatus())
			assert.ErrorIs(t, e, tt.err)
			assert.True(t, strings.HasSuffix(e.FuncName, "TestClassify.func1"), e.FuncName)
		})
	}
}

func TestClassifyKeepsAppErrors(t *testing.T) {
	orig := errs.Newf(errs.FailedPrecondition, "Cannot delete super admin")

	got := errs.Classify(fmt.Errorf("wrapped: %w", orig))
	assert.Same(t, orig, got)
	assert.Nil(t, errs.Classify(nil))
}

func TestClassifyFieldErrorsCarried(t *testing.T) {
	fields := validation.FieldErrors{{Field: "name", Rule: "required", Message: "Name is required"}}

	e := errs.Classify(fields)
	assert.Equal(t, "Validation failed", e.Message)
	assert.Equal(t, fields, e.Fields)
}

func TestErrorEncode(t *testing.T) {
	e := errs.NewFieldErrors(validation.FieldErrors{{Field: "email", Rule: "email", Message: "Email must be a valid email address"}})

	data, contentType, err := e.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.JSONEq(t, `{
		"message": "Validation failed",
		"code": "unprocessable",
		"errors": [{"field": "email", "rule": "email", "message": "Email must be a valid email address"}]
	}`, string(data))

	data, _, err = errs.Newf(errs.NotFound, "User not found").Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"User not found","code":"not_found"}`, string(data))
}

func TestErrCodeText(t *testing.T) {
	b, err := json.Marshal(errs.FailedPrecondition)
	require.NoError(t, err)
	assert.Equal(t, `"failed_precondition"`, string(b))

	var code errs.ErrCode
	require.NoError(t, json.Unmarshal([]byte(`"not_found"`), &code))
	assert.True(t, code.Equal(errs.NotFound))

	assert.Error(t, json.Unmarshal([]byte(`"teapot"`), &code))
}

func TestNewWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	e := errs.New(errs.Unavailable, cause)

	assert.Equal(t, cause.Error(), e.Error())
	assert.ErrorIs(t, e, cause)
	assert.True(t, errs.IsError(fmt.Errorf("x: %w", e)))
	assert.Same(t, e, errs.GetError(fmt.Errorf("x: %w", e)))
	assert.Nil(t, errs.GetError(cause))
	assert.True(t, e.Equal(errs.Newf(errs.Unavailable, "dial tcp: refused")))
}
