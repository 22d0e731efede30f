package models

import (
	"time"

	"github.com/google/uuid"
)

// Calculation is a stored arithmetic result. The result is computed once at
// creation time and never recomputed; the record is immutable after creation
// except for deletion. UserID is nil for records with no owning user.
type Calculation struct {
	ID        uuid.UUID  `json:"id"`
	A         float64    `json:"a"`
	B         float64    `json:"b"`
	Type      string     `json:"type"`
	Result    float64    `json:"result"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
