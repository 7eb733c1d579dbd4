package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinic-backend/internal/domains/appointment/model"
)

// RepositoryInterface defines data access for appointments and their
// doctor assignments.
type RepositoryInterface interface {
	// Create writes the appointment row and one join row per doctor atomically
	Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Appointment, error)
	UpdateTime(ctx context.Context, id uuid.UUID, at time.Time) (*model.Appointment, error)

	// Delete removes the join rows, then the appointment, in one transaction
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventRepositoryInterface stores the appointment audit trail
type EventRepositoryInterface interface {
	Insert(ctx context.Context, e *model.AppointmentEvent) error
	ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentEvent, error)

	// DeleteOlderThan purges events that occurred before cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
