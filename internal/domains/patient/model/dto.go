package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"clinic-backend/internal/shared"
)

var lettersOnly = regexp.MustCompile(`^[A-Za-z]+$`)

func nameRules(label string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(label + " cannot be null"),
		validation.RuneLength(2, 50).Error(label + " must be between 2 and 50 characters"),
		validation.Match(lettersOnly).Error(label + " must contain only letters"),
	}
}

// PatientRequest is the body of POST /v1/patient and PUT /v1/patient/:id
type PatientRequest struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	MiddleName  string       `json:"middleName"`
	DateOfBirth *shared.Date `json:"dateOfBirth"`
}

func (r PatientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, nameRules("First name")...),
		validation.Field(&r.LastName, nameRules("Last name")...),
		validation.Field(&r.MiddleName, nameRules("Middle name")...),
		validation.Field(&r.DateOfBirth, validation.NotNil.Error("Date of birth cannot be null")),
	)
}

func (r *PatientRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.MiddleName = strings.TrimSpace(r.MiddleName)
}

func (r *PatientRequest) ToEntity() *Patient {
	p := &Patient{}
	r.ApplyTo(p)
	return p
}

// ApplyTo overwrites every mutable field of p
func (r *PatientRequest) ApplyTo(p *Patient) {
	p.FirstName = r.FirstName
	p.LastName = r.LastName
	p.MiddleName = r.MiddleName
	if r.DateOfBirth != nil {
		p.DateOfBirth = r.DateOfBirth.Time
	}
}

// SearchRequest is the body of POST /v1/patient/search
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

type PatientResponse struct {
	ID          uuid.UUID   `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	MiddleName  string      `json:"middleName"`
	DateOfBirth shared.Date `json:"dateOfBirth"`
}

func (p *Patient) ToResponse() *PatientResponse {
	return &PatientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		MiddleName:  p.MiddleName,
		DateOfBirth: shared.NewDate(p.DateOfBirth.Year(), p.DateOfBirth.Month(), p.DateOfBirth.Day()),
	}
}

func ToResponses(patients []*Patient) []*PatientResponse {
	out := make([]*PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.ToResponse())
	}
	return out
}
