package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mpetrov/secureapp/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// Conflict fields reported by ConflictError. FieldUnknown covers uniqueness
// violations that cannot be attributed to a single column.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldUnknown  = "unknown"
)

// ConflictError is a rejected write caused by a unique-constraint violation.
// Field names the violated column when the store can determine it.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return "uniqueness conflict on " + e.Field
}

// UserPatch carries the fields of a partial user update. Nil fields keep
// their current value.
type UserPatch struct {
	Username *string
	Email    *string
}

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// CalculationFilter narrows a calculation query. Nil fields are ignored.
type CalculationFilter struct {
	Type   *string
	UserID *uuid.UUID
}

// CalculationStore captures calculation persistence. Records are created and
// deleted but never updated; listing is ordered by creation time.
type CalculationStore interface {
	CreateCalculation(ctx context.Context, calculation models.Calculation) (models.Calculation, error)
	ListCalculations(ctx context.Context, filter CalculationFilter) ([]models.Calculation, error)
	DeleteCalculation(ctx context.Context, id uuid.UUID) error
}
