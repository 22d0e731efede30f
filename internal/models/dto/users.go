// Package dto defines request payload shapes and their validation rules.
package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// UpdateUserRequest is the payload for PUT /users/{id}. Omitted fields keep
// their current value.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
}

// Validate checks the payload against its declared rules and returns
// per-field messages keyed by the JSON field name.
func (r CreateUserRequest) Validate() map[string]string {
	return checkStruct(r)
}

// Validate checks the supplied fields only.
func (r UpdateUserRequest) Validate() map[string]string {
	return checkStruct(r)
}

func checkStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe.Field())] = message(fe)
	}
	return fields
}

func fieldName(structField string) string {
	switch structField {
	case "Username":
		return "username"
	case "Email":
		return "email"
	case "Password":
		return "password"
	}
	return structField
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	}
	return "invalid value"
}
