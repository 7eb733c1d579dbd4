package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment links one patient to one or more doctors at a wall-clock time.
// CreatedBy is the username of the acting user at creation and is the only
// identity allowed to mutate the appointment afterwards.
type Appointment struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	PatientID       uuid.UUID   `json:"patientId" db:"patient_id"`
	DoctorIDs       []uuid.UUID `json:"doctorIds"`
	AppointmentTime time.Time   `json:"appointmentTime" db:"appointment_time"`
	Status          string      `json:"status" db:"status"`
	CreatedBy       string      `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether username created the appointment
func (a *Appointment) IsOwnedBy(username string) bool {
	return a.CreatedBy == username
}

// AppointmentEvent is one row of the appointment audit trail
type AppointmentEvent struct {
	ID            int64     `json:"id" db:"id"`
	AppointmentID uuid.UUID `json:"appointmentId" db:"appointment_id"`
	EventType     string    `json:"eventType" db:"event_type"`
	Actor         string    `json:"actor" db:"actor"`
	Status        string    `json:"status,omitempty" db:"status"`
	OccurredAt    time.Time `json:"occurredAt" db:"occurred_at"`
	RecordedAt    time.Time `json:"recordedAt" db:"recorded_at"`
}
