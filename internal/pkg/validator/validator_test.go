package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `validate:"required"`
}

func TestValidatePasses(t *testing.T) {
	details := Validate(sampleBody{Email: "a@example.com", Password: "longenough", Nickname: "al"})
	assert.Nil(t, details)
}

func TestValidateKeysUseJSONNames(t *testing.T) {
	details := Validate(sampleBody{Email: "not-an-email", Password: "short", Nickname: ""})
	assert.Equal(t, "email", details["email"])
	assert.Equal(t, "min", details["password"])
	// fields without a json tag fall back to the Go name
	assert.Equal(t, "required", details["Nickname"])
}
