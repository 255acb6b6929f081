package validation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jrazmi/backoffice/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name                 string  `json:"name" validate:"required,max=10"`
	Email                string  `json:"email" validate:"required,email"`
	Password             *string `json:"password" validate:"omitempty,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation *string `json:"passwordConfirmation"`
	UserStatusID         int     `json:"user_status_id" validate:"required"`
	Secret               string  `json:"-" validate:"max=3"`
}

func ptr(s string) *string { return &s }

func TestCheckValid(t *testing.T) {
	err := validation.Check(signup{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             ptr("password1"),
		PasswordConfirmation: ptr("password1"),
		UserStatusID:         1,
	})
	assert.NoError(t, err)
}

func TestCollectMessages(t *testing.T) {
	fe := validation.Collect(signup{
		Name:                 "A very long name",
		Email:                "not-an-email",
		Password:             ptr("short"),
		PasswordConfirmation: ptr("short"),
	})

	got := map[string]validation.FieldError{}
	for _, f := range fe {
		got[f.Field] = f
	}

	assert.Equal(t, "Name must not be greater than 10 characters", got["name"].Message)
	assert.Equal(t, "max", got["name"].Rule)
	assert.Equal(t, "Email must be a valid email address", got["email"].Message)
	assert.Equal(t, "Password must have at least 8 characters", got["password"].Message)
	assert.Equal(t, "User status id is required", got["user_status_id"].Message)
	assert.Equal(t, "required", got["user_status_id"].Rule)
}

func TestCollectPasswordMismatch(t *testing.T) {
	fe := validation.Collect(signup{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             ptr("password1"),
		PasswordConfirmation: ptr("password2"),
		UserStatusID:         1,
	})

	require.Len(t, fe, 1)
	assert.Equal(t, "password", fe[0].Field)
	assert.Equal(t, "eqfield", fe[0].Rule)
	assert.Equal(t, "Password and Password confirmation do not match", fe[0].Message)
}

func TestFieldErrors(t *testing.T) {
	var fe validation.FieldErrors
	assert.NoError(t, fe.Err())

	fe.Add("email", "unique", "The email has already been taken")
	fe.Add("name", "required", "Name is required")

	assert.True(t, fe.Has("email"))
	assert.False(t, fe.Has("password"))
	assert.Equal(t, "The email has already been taken; Name is required", fe.Error())

	err := fmt.Errorf("create user: %w", fe.Err())
	got, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Len(t, got, 2)

	_, ok = validation.AsFieldErrors(errors.New("boom"))
	assert.False(t, ok)
}

func TestFieldLabel(t *testing.T) {
	tests := map[string]string{
		"user_status_id":       "User status id",
		"userStatusName":       "User status name",
		"PasswordConfirmation": "Password confirmation",
		"email":                "Email",
		"XMLParser":            "XML parser",
	}
	for in, want := range tests {
		assert.Equal(t, want, validation.FieldLabel(in), in)
	}
}

func TestCamelCaseToTitleCase(t *testing.T) {
	assert.Equal(t, "Case Study", validation.CamelCaseToTitleCase("caseStudy"))
	assert.Equal(t, "XML Parser", validation.CamelCaseToTitleCase("XMLParser"))
	assert.Equal(t, "", validation.CamelCaseToTitleCase(""))
}
