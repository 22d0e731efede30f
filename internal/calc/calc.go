// Package calc evaluates the fixed set of binary arithmetic operations and
// builds calculation records from their results.
package calc

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mpetrov/secureapp/internal/models"
)

// Operation names one of the supported binary operations.
type Operation string

const (
	Add      Operation = "Add"
	Subtract Operation = "Subtract"
	Multiply Operation = "Multiply"
	Divide   Operation = "Divide"
)

// ErrInvalidOperation indicates an operation name outside the supported set.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrDivisionByZero indicates a Divide request with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Valid reports whether op is one of the supported operations.
func (op Operation) Valid() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Calculate applies op to the operands a and b.
func Calculate(op Operation, a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperation, string(op))
	}
}

// NewCalculation evaluates op over (a, b) and returns an unsaved record with
// the result computed now. The store assigns the creation timestamp; the id is
// assigned here. userID may be nil for records with no owning user.
func NewCalculation(op Operation, a, b float64, userID *uuid.UUID) (models.Calculation, error) {
	result, err := Calculate(op, a, b)
	if err != nil {
		return models.Calculation{}, err
	}
	return models.Calculation{
		ID:     uuid.New(),
		A:      a,
		B:      b,
		Type:   string(op),
		Result: result,
		UserID: userID,
	}, nil
}
