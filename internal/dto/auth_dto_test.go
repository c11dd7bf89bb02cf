package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "Secret123",
	}
}

func TestRegisterRequestNormalize(t *testing.T) {
	req := RegisterRequest{
		FirstName: "  Jane ",
		LastName:  " Doe  ",
		Email:     " Jane@Example.COM ",
	}
	req.Normalize()

	assert.Equal(t, "Jane", req.FirstName)
	assert.Equal(t, "Doe", req.LastName)
	assert.Equal(t, "jane@example.com", req.Email)
}

func TestRegisterRequestValidate(t *testing.T) {
	req := validRegister()
	assert.NoError(t, req.Validate())

	req = validRegister()
	req.FirstName = "J"
	assert.EqualError(t, req.Validate(), "First name must be at least 2 characters long")

	req = validRegister()
	req.LastName = strings.Repeat("x", 51)
	assert.EqualError(t, req.Validate(), "Last name cannot exceed 50 characters")

	req = validRegister()
	req.Email = "not-an-email"
	assert.EqualError(t, req.Validate(), "Please provide a valid email address")

	req = validRegister()
	req.Password = "short1"
	assert.EqualError(t, req.Validate(), "Password must be at least 8 characters long")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret123"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("ab1"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.NoError(t, ValidateEmail("jane.doe+test@sub.example.co.uk"))
	assert.EqualError(t, ValidateEmail(""), "Email is required")
	assert.Error(t, ValidateEmail("jane@"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("jane@example"))
}

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Email: "jane@example.com", Password: "Secret123"}
	assert.NoError(t, req.Validate())

	req.Password = ""
	assert.EqualError(t, req.Validate(), "Password is required")

	req = LoginRequest{Email: "bad", Password: "Secret123"}
	assert.Error(t, req.Validate())
}

func TestUpdateAvatarRequestValidate(t *testing.T) {
	req := UpdateAvatarRequest{AvatarURL: "https://cdn.example.com/a.png"}
	assert.NoError(t, req.Validate())

	req.AvatarURL = ""
	assert.EqualError(t, req.Validate(), "Avatar URL is required")

	req.AvatarURL = "not a url"
	assert.EqualError(t, req.Validate(), "Invalid avatar URL")
}
