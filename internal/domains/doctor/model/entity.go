package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is an aggregate root. Username is globally unique and identifies
// the doctor as an acting user.
type Doctor struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
