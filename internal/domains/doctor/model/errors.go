package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clinic-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeDoctorNotFound        = "DOC001"
	ErrCodeUsernameTaken         = "DOC002"
	ErrCodeDoctorHasAppointments = "DOC003"
)

// Repository-level sentinels
var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrDoctorHasAppointments = errors.New("doctor has appointments")
)

func NewDoctorNotFoundError(id uuid.UUID) *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodeDoctorNotFound,
		fmt.Sprintf("Doctor not found with ID: %s", id), ErrDoctorNotFound)
}

func NewUsernameTakenError(username string) *apperror.Error {
	return apperror.Wrap(apperror.KindConflict, ErrCodeUsernameTaken,
		fmt.Sprintf("Username '%s' already exists.", username), ErrUsernameTaken)
}

func NewDoctorHasAppointmentsError() *apperror.Error {
	return apperror.Wrap(apperror.KindInvalidState, ErrCodeDoctorHasAppointments,
		"Cannot delete doctor with existing appointments.", ErrDoctorHasAppointments)
}
