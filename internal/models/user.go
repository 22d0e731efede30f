package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is write-only within the
// application and never appears in a response body.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
