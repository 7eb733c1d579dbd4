package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{4,32}$`)

// =====================================================
// REQUESTS
// =====================================================

// DoctorRequest is the body of POST /v1/doctor and PUT /v1/doctor/:id
type DoctorRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r DoctorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("Username cannot be null"),
			validation.Match(usernamePattern).Error("Username must be 4-32 characters long and contain only letters, numbers, and underscores"),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("First name cannot be null"),
			validation.RuneLength(2, 50).Error("First name must be between 2 and 50 characters"),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("Last name cannot be null"),
			validation.RuneLength(2, 50).Error("Last name must be between 2 and 50 characters"),
		),
	)
}

// Normalize trims surrounding whitespace before validation.
func (r *DoctorRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// ToEntity builds a new Doctor from the request
func (r *DoctorRequest) ToEntity() *Doctor {
	return &Doctor{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// ApplyTo overwrites every mutable field of d
func (r *DoctorRequest) ApplyTo(d *Doctor) {
	d.Username = r.Username
	d.FirstName = r.FirstName
	d.LastName = r.LastName
}

// =====================================================
// RESPONSES
// =====================================================

type DoctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func (d *Doctor) ToResponse() *DoctorResponse {
	return &DoctorResponse{
		ID:        d.ID,
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
}

func ToResponses(doctors []*Doctor) []*DoctorResponse {
	out := make([]*DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.ToResponse())
	}
	return out
}
