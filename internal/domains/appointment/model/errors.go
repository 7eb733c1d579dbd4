package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clinic-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeAppointmentNotFound = "APT001"
	ErrCodePatientNotFound     = "APT002"
	ErrCodeDoctorNotFound      = "APT003"
	ErrCodeNotCreator          = "APT004"
	ErrCodeMissingTime         = "APT005"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrReferenceNotFound   = errors.New("referenced patient or doctor not found")
)

func NewAppointmentNotFoundError(id uuid.UUID) *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodeAppointmentNotFound,
		fmt.Sprintf("Appointment not found with ID: %s", id), ErrAppointmentNotFound)
}

func NewPatientNotFoundError(id uuid.UUID) *apperror.Error {
	return apperror.NotFound(ErrCodePatientNotFound,
		fmt.Sprintf("Patient not found with ID: %s", id))
}

func NewDoctorsNotFoundError(missing []uuid.UUID) *apperror.Error {
	return apperror.NotFound(ErrCodeDoctorNotFound,
		fmt.Sprintf("One or more doctors not found: %v", missing))
}

// NewNotCreatorError is raised when someone other than the creator tries
// to change an appointment.
func NewNotCreatorError(action string) *apperror.Error {
	return apperror.Forbidden(ErrCodeNotCreator,
		fmt.Sprintf("Only the doctor who created the appointment can %s it.", action))
}

func NewMissingTimeError() *apperror.Error {
	return apperror.InvalidArgument(ErrCodeMissingTime,
		"Appointment time must be provided for update.")
}
