package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/secureapp/internal/storage"
)

func uniqueViolationError(constraint string) error {
	return &pgconn.PgError{
		Code:           uniqueViolation,
		ConstraintName: constraint,
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
	}
}

func TestClassifyConflict(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantField  string
	}{
		{"username constraint", "users_username_key", storage.FieldUsername},
		{"email constraint", "users_email_key", storage.FieldEmail},
		{"unrecognized constraint", "users_pkey", storage.FieldUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict := classifyConflict(uniqueViolationError(tt.constraint))
			require.NotNil(t, conflict)
			assert.Equal(t, tt.wantField, conflict.Field)
		})
	}
}

func TestPageCapacity(t *testing.T) {
	assert.Equal(t, 0, pageCapacity(0))
	assert.Equal(t, 10, pageCapacity(10))
	assert.Equal(t, 64, pageCapacity(64))
	// A caller-supplied limit must not drive the allocation size.
	assert.Equal(t, 64, pageCapacity(2_000_000_000))
}

func TestClassifyConflictWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", uniqueViolationError("users_email_key"))
	conflict := classifyConflict(wrapped)
	require.NotNil(t, conflict)
	assert.Equal(t, storage.FieldEmail, conflict.Field)
}

func TestClassifyConflictIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, classifyConflict(errors.New("connection refused")))
	assert.Nil(t, classifyConflict(&pgconn.PgError{Code: "23503", ConstraintName: "calculations_user_id_fkey"}))
	assert.Nil(t, classifyConflict(nil))
}
