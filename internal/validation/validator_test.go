package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpForm struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,pwd"`
	Code     string   `json:"code" validate:"omitempty,otp"`
	Tags     []string `json:"tags" validate:"omitempty,min=3"`
	Level    string   `json:"level" validate:"omitempty,oneof=beginner intermediate expert"`
	Internal string   `json:"-" validate:"omitempty,email"`
}

func TestStruct_ValidReturnsNil(t *testing.T) {
	got := Struct(signUpForm{Name: "Ann", Email: "ann@x.com", Password: "pw123456", Code: "123456"})
	require.Nil(t, got)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	got := Struct(signUpForm{Email: "not-an-email", Password: "short", Code: "12a456", Tags: []string{"a"}, Level: "guru"})
	require.NotNil(t, got)

	assert.Equal(t, "is required", got["name"])
	assert.Equal(t, "must be a valid email", got["email"])
	assert.Equal(t, "must be at least 8 characters long", got["password"])
	assert.Equal(t, "must be a 6 digit code", got["code"])
	assert.Equal(t, "select at least 3", got["tags"])
	assert.Equal(t, "must be one of: beginner, intermediate, expert", got["level"])
}

func TestStruct_OTPRejectsNonDigitsAndWrongLength(t *testing.T) {
	for _, code := range []string{"abcdef", "12345", "1234567", "-12345", "12.456"} {
		got := Struct(signUpForm{Name: "Ann", Email: "ann@x.com", Password: "pw123456", Code: code})
		assert.Contains(t, got, "code", "code %q must be rejected", code)
	}
}

func TestToDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))
}
