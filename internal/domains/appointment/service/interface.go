package service

import (
	"context"

	"github.com/google/uuid"

	"clinic-backend/internal/domains/appointment/model"
	doctorModel "clinic-backend/internal/domains/doctor/model"
	patientModel "clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/shared"
)

// =====================================================
// APPOINTMENT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// Create books an appointment on behalf of actor, who becomes its creator
	Create(ctx context.Context, req model.CreateAppointmentRequest, actor string) (*model.AppointmentResponse, error)

	Get(ctx context.Context, id uuid.UUID) (*model.AppointmentResponse, error)
	List(ctx context.Context) ([]*model.AppointmentResponse, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentResponse, error)

	// ========================================
	// CREATOR-ONLY OPERATIONS
	// ========================================

	Cancel(ctx context.Context, id uuid.UUID, actor string) (*model.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error

	// Update reschedules the appointment; nothing else can change
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAppointmentRequest, actor string) (*model.AppointmentResponse, error)

	// History returns the recorded lifecycle events of an appointment
	History(ctx context.Context, id uuid.UUID) ([]*model.AppointmentEvent, error)
}

// DoctorLookup resolves doctors by id
type DoctorLookup interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*doctorModel.Doctor, error)
}

// PatientLookup resolves a patient by id
type PatientLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patientModel.Patient, error)
}

// EventPublisher hands appointment lifecycle events to background processing
type EventPublisher interface {
	Publish(ctx context.Context, event shared.AppointmentEventPayload) error
}

// EventReader reads the recorded audit trail
type EventReader interface {
	ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentEvent, error)
}
