package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequestValidate(t *testing.T) {
	valid := CreateUserRequest{
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "securepassword123",
	}
	assert.Nil(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
		field  string
	}{
		{"username too short", func(r *CreateUserRequest) { r.Username = "jo" }, "username"},
		{"username too long", func(r *CreateUserRequest) { r.Username = strings.Repeat("a", 51) }, "username"},
		{"username missing", func(r *CreateUserRequest) { r.Username = "" }, "username"},
		{"email invalid", func(r *CreateUserRequest) { r.Email = "not-an-email" }, "email"},
		{"email too long", func(r *CreateUserRequest) { r.Email = strings.Repeat("a", 95) + "@e.com" }, "email"},
		{"email missing", func(r *CreateUserRequest) { r.Email = "" }, "email"},
		{"password too short", func(r *CreateUserRequest) { r.Password = "short" }, "password"},
		{"password too long", func(r *CreateUserRequest) { r.Password = strings.Repeat("p", 101) }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			fields := req.Validate()
			require.NotNil(t, fields)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestUpdateUserRequestValidate(t *testing.T) {
	username := "newname"
	email := "new@example.com"
	shortName := "ab"
	badEmail := "nope"

	assert.Nil(t, UpdateUserRequest{}.Validate(), "all fields omitted is valid")
	assert.Nil(t, UpdateUserRequest{Username: &username}.Validate())
	assert.Nil(t, UpdateUserRequest{Email: &email}.Validate())
	assert.Nil(t, UpdateUserRequest{Username: &username, Email: &email}.Validate())

	fields := UpdateUserRequest{Username: &shortName}.Validate()
	require.NotNil(t, fields)
	assert.Contains(t, fields, "username")

	fields = UpdateUserRequest{Email: &badEmail}.Validate()
	require.NotNil(t, fields)
	assert.Contains(t, fields, "email")
}
