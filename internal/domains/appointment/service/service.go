package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/domains/appointment/model"
	"clinic-backend/internal/domains/appointment/repository"
	doctorModel "clinic-backend/internal/domains/doctor/model"
	patientModel "clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/observability/metrics"
	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

type appointmentService struct {
	repo      repository.RepositoryInterface
	doctors   DoctorLookup
	patients  PatientLookup
	publisher EventPublisher
	events    EventReader
}

func NewAppointmentService(
	repo repository.RepositoryInterface,
	doctors DoctorLookup,
	patients PatientLookup,
	publisher EventPublisher,
	events EventReader,
) ServiceInterface {
	return &appointmentService{
		repo:      repo,
		doctors:   doctors,
		patients:  patients,
		publisher: publisher,
		events:    events,
	}
}

// Create books an appointment
// Steps:
// 1. Validate request
// 2. Resolve patient
// 3. Resolve every (deduplicated) doctor id
// 4. Persist appointment and assignments
// 5. Publish created event
func (s *appointmentService) Create(ctx context.Context, req model.CreateAppointmentRequest, actor string) (*model.AppointmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	patient, err := s.patients.GetByID(ctx, *req.PatientID)
	if err != nil {
		if errors.Is(err, patientModel.ErrPatientNotFound) {
			return nil, model.NewPatientNotFoundError(*req.PatientID)
		}
		return nil, err
	}

	doctorIDs := req.UniqueDoctorIDs()
	doctors, err := s.doctors.GetByIDs(ctx, doctorIDs)
	if err != nil {
		return nil, err
	}
	if missing := missingDoctors(doctorIDs, doctors); len(missing) > 0 {
		return nil, model.NewDoctorsNotFoundError(missing)
	}

	created, err := s.repo.Create(ctx, &model.Appointment{
		PatientID:       patient.ID,
		DoctorIDs:       doctorIDs,
		AppointmentTime: req.AppointmentTime.Time,
		Status:          req.Status,
		CreatedBy:       actor,
	})
	if err != nil {
		// a patient or doctor was removed between the lookup and the insert
		if errors.Is(err, model.ErrReferenceNotFound) {
			return nil, apperror.Wrap(apperror.KindNotFound, model.ErrCodeDoctorNotFound,
				"Patient or doctor no longer exists", err)
		}
		return nil, err
	}

	log.Info().
		Str("appointment_id", created.ID.String()).
		Str("created_by", actor).
		Int("doctors", len(doctorIDs)).
		Msg("Appointment created")
	s.publish(ctx, created, shared.EventAppointmentCreated, actor)

	return created.ToResponse(patient, doctors), nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.hydrate(ctx, []*model.Appointment{a})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *appointmentService) List(ctx context.Context) ([]*model.AppointmentResponse, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, appointments)
}

func (s *appointmentService) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.AppointmentResponse, error) {
	appointments, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, appointments)
}

func (s *appointmentService) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentResponse, error) {
	appointments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, appointments)
}

func (s *appointmentService) Cancel(ctx context.Context, id uuid.UUID, actor string) (*model.AppointmentResponse, error) {
	if _, err := s.authorize(ctx, id, actor, "cancel"); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled)
	if err != nil {
		return nil, mapError(err, id)
	}

	log.Info().Str("appointment_id", id.String()).Str("actor", actor).Msg("Appointment cancelled")
	s.publish(ctx, updated, shared.EventAppointmentCancelled, actor)

	return s.single(ctx, updated)
}

func (s *appointmentService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	existing, err := s.authorize(ctx, id, actor, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, id)
	}

	log.Info().Str("appointment_id", id.String()).Str("actor", actor).Msg("Appointment deleted")
	s.publish(ctx, existing, shared.EventAppointmentDeleted, actor)
	return nil
}

func (s *appointmentService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAppointmentRequest, actor string) (*model.AppointmentResponse, error) {
	if _, err := s.authorize(ctx, id, actor, "update"); err != nil {
		return nil, err
	}

	if req.AppointmentTime == nil {
		return nil, model.NewMissingTimeError()
	}

	updated, err := s.repo.UpdateTime(ctx, id, req.AppointmentTime.Time)
	if err != nil {
		return nil, mapError(err, id)
	}

	log.Info().Str("appointment_id", id.String()).Str("actor", actor).Msg("Appointment rescheduled")
	s.publish(ctx, updated, shared.EventAppointmentUpdated, actor)

	return s.single(ctx, updated)
}

func (s *appointmentService) History(ctx context.Context, id uuid.UUID) ([]*model.AppointmentEvent, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.events.ListByAppointment(ctx, id)
}

// =====================================================
// HELPERS
// =====================================================

func (s *appointmentService) find(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id)
	}
	return a, nil
}

// authorize loads the appointment and checks actor is its creator
func (s *appointmentService) authorize(ctx context.Context, id uuid.UUID, actor, action string) (*model.Appointment, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(actor) {
		metrics.ObserveAuthorizationDenied(action)
		log.Warn().
			Str("appointment_id", id.String()).
			Str("actor", actor).
			Str("created_by", a.CreatedBy).
			Str("action", action).
			Msg("Appointment change rejected")
		return nil, model.NewNotCreatorError(action)
	}
	return a, nil
}

// publish is best-effort: a failed enqueue is logged and never fails the caller
func (s *appointmentService) publish(ctx context.Context, a *model.Appointment, event shared.AppointmentEventType, actor string) {
	metrics.ObserveAppointmentEvent(string(event))

	err := s.publisher.Publish(ctx, shared.AppointmentEventPayload{
		AppointmentID: a.ID.String(),
		EventType:     event,
		Actor:         actor,
		Status:        a.Status,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).
			Str("appointment_id", a.ID.String()).
			Str("event", string(event)).
			Msg("Failed to publish appointment event")
	}
}

func (s *appointmentService) single(ctx context.Context, a *model.Appointment) (*model.AppointmentResponse, error) {
	responses, err := s.hydrate(ctx, []*model.Appointment{a})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// hydrate resolves patients and doctors for a batch of appointments,
// loading each patient once and all doctors in one lookup.
func (s *appointmentService) hydrate(ctx context.Context, appointments []*model.Appointment) ([]*model.AppointmentResponse, error) {
	out := make([]*model.AppointmentResponse, 0, len(appointments))
	if len(appointments) == 0 {
		return out, nil
	}

	patients := make(map[uuid.UUID]*patientModel.Patient)
	var doctorIDs []uuid.UUID
	seenDoctor := make(map[uuid.UUID]struct{})

	for _, a := range appointments {
		if _, ok := patients[a.PatientID]; !ok {
			p, err := s.patients.GetByID(ctx, a.PatientID)
			if err != nil {
				return nil, fmt.Errorf("load patient %s: %w", a.PatientID, err)
			}
			patients[a.PatientID] = p
		}
		for _, id := range a.DoctorIDs {
			if _, ok := seenDoctor[id]; !ok {
				seenDoctor[id] = struct{}{}
				doctorIDs = append(doctorIDs, id)
			}
		}
	}

	doctorList, err := s.doctors.GetByIDs(ctx, doctorIDs)
	if err != nil {
		return nil, err
	}
	doctors := make(map[uuid.UUID]*doctorModel.Doctor, len(doctorList))
	for _, d := range doctorList {
		doctors[d.ID] = d
	}

	for _, a := range appointments {
		assigned := make([]*doctorModel.Doctor, 0, len(a.DoctorIDs))
		for _, id := range a.DoctorIDs {
			if d, ok := doctors[id]; ok {
				assigned = append(assigned, d)
			}
		}
		out = append(out, a.ToResponse(patients[a.PatientID], assigned))
	}
	return out, nil
}

func missingDoctors(requested []uuid.UUID, found []*doctorModel.Doctor) []uuid.UUID {
	have := make(map[uuid.UUID]struct{}, len(found))
	for _, d := range found {
		have[d.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func mapError(err error, id uuid.UUID) error {
	if errors.Is(err, model.ErrAppointmentNotFound) {
		return model.NewAppointmentNotFoundError(id)
	}
	return fmt.Errorf("appointment %s: %w", id, err)
}
