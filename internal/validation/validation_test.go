package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Name        string `validate:"required"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"required,phone"`
	DateOfBirth string `validate:"required,birthdate"`
}

func validForm() signupForm {
	return signupForm{
		Name:        "Ada",
		Email:       "ada@x.com",
		Phone:       "9876543210",
		DateOfBirth: "1990-01-01",
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validForm()))
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		ok    bool
	}{
		{"starts with 9", "9876543210", true},
		{"starts with 6", "6123456789", true},
		{"starts with 5", "5876543210", false},
		{"too short", "987654321", false},
		{"too long", "98765432100", false},
		{"non-digit", "98765x3210", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Phone = tt.phone
			err := Validate(f)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "phone")
			}
		})
	}
}

func TestValidate_DateOfBirth(t *testing.T) {
	f := validForm()
	f.DateOfBirth = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	err := Validate(f)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dateofbirth")

	f.DateOfBirth = "not-a-date"
	assert.Error(t, Validate(f))
}

func TestValidate_MultipleFailures(t *testing.T) {
	f := signupForm{}
	err := Validate(f)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), ";")
}
