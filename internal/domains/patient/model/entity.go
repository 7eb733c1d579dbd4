package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is an aggregate root. DateOfBirth carries no time or zone.
type Patient struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	MiddleName  string    `json:"middleName" db:"middle_name"`
	DateOfBirth time.Time `json:"dateOfBirth" db:"date_of_birth"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
