package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clinic-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodePatientNotFound        = "PAT001"
	ErrCodePatientHasAppointments = "PAT002"
)

var (
	ErrPatientNotFound        = errors.New("patient not found")
	ErrPatientHasAppointments = errors.New("patient has appointments")
)

func NewPatientNotFoundError(id uuid.UUID) *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodePatientNotFound,
		fmt.Sprintf("Patient not found with ID: %s", id), ErrPatientNotFound)
}

func NewPatientHasAppointmentsError() *apperror.Error {
	return apperror.Wrap(apperror.KindInvalidState, ErrCodePatientHasAppointments,
		"Cannot delete patient with existing appointments.", ErrPatientHasAppointments)
}
