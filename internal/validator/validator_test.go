package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	Role     string `json:"usertype" validate:"omitempty,is-signup-role"`
	Level    string `json:"creatorLevel" validate:"omitempty,is-creator-level"`
}

func TestValidate_FieldNamesFromJSONTags(t *testing.T) {
	v := New()

	err := v.Validate(&signupPayload{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required.", vErr.Errors["email"])
	assert.Equal(t, "This field is required.", vErr.Errors["username"])
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	err := v.Validate(&signupPayload{Email: "a@b.co", Username: "bad name", Role: "admin", Level: "Gold"})
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "usertype")
	assert.Contains(t, vErr.Errors, "creatorLevel")
	assert.Contains(t, vErr.Errors, "username")

	assert.NoError(t, v.Validate(&signupPayload{Email: "a@b.co", Username: "jane.doe", Role: "creator", Level: "Vip"}))
}
