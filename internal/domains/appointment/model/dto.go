package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	doctorModel "clinic-backend/internal/domains/doctor/model"
	patientModel "clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/shared"
)

// CreateAppointmentRequest is the body of POST /v1/appointment
type CreateAppointmentRequest struct {
	AppointmentTime *shared.LocalDateTime `json:"appointmentTime"`
	Status          string                `json:"status"`
	PatientID       *uuid.UUID            `json:"patientId"`
	DoctorIDs       []uuid.UUID           `json:"doctorIds"`
}

func (r CreateAppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AppointmentTime, validation.NotNil.Error("Appointment time cannot be null")),
		validation.Field(&r.Status,
			validation.Required.Error("Status cannot be null"),
			validation.In(StatusScheduled, StatusCompleted, StatusCancelled).
				Error("Status must be one of Scheduled, Completed, Cancelled"),
		),
		validation.Field(&r.PatientID, validation.NotNil.Error("Patient ID cannot be null")),
		validation.Field(&r.DoctorIDs, validation.Required.Error("At least one doctor must be assigned")),
	)
}

// UniqueDoctorIDs returns the requested doctor ids without duplicates,
// keeping the first occurrence order.
func (r *CreateAppointmentRequest) UniqueDoctorIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.DoctorIDs))
	out := make([]uuid.UUID, 0, len(r.DoctorIDs))
	for _, id := range r.DoctorIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// UpdateAppointmentRequest is the body of PUT /v1/appointment/:id.
// Only the time can change.
type UpdateAppointmentRequest struct {
	AppointmentTime *shared.LocalDateTime `json:"appointmentTime"`
}

type AppointmentResponse struct {
	ID              uuid.UUID                     `json:"id"`
	AppointmentTime shared.LocalDateTime          `json:"appointmentTime"`
	Status          string                        `json:"status"`
	CreatedBy       string                        `json:"createdBy"`
	Patient         *patientModel.PatientResponse `json:"patient"`
	Doctors         []*doctorModel.DoctorResponse `json:"doctors"`
}

// ToResponse builds the response from the appointment and its resolved
// patient and doctors.
func (a *Appointment) ToResponse(patient *patientModel.Patient, doctors []*doctorModel.Doctor) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              a.ID,
		AppointmentTime: shared.NewLocalDateTime(a.AppointmentTime),
		Status:          a.Status,
		CreatedBy:       a.CreatedBy,
		Doctors:         doctorModel.ToResponses(doctors),
	}
	if patient != nil {
		resp.Patient = patient.ToResponse()
	}
	return resp
}
