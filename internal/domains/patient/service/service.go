package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/domains/patient/repository"
	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

type patientService struct {
	repo repository.RepositoryInterface
}

func NewPatientService(repo repository.RepositoryInterface) ServiceInterface {
	return &patientService{repo: repo}
}

func (s *patientService) Create(ctx context.Context, req model.PatientRequest) (*model.PatientResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}

	log.Info().Str("patient_id", created.ID.String()).Msg("Patient created")
	return created.ToResponse(), nil
}

func (s *patientService) GetByID(ctx context.Context, id uuid.UUID) (*model.PatientResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id)
	}
	return p.ToResponse(), nil
}

func (s *patientService) List(ctx context.Context) ([]*model.PatientResponse, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(patients), nil
}

func (s *patientService) ListPaged(ctx context.Context, page shared.PageRequest) ([]*model.PatientResponse, int64, error) {
	page = page.Normalize()
	patients, total, err := s.repo.ListPaged(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return model.ToResponses(patients), total, nil
}

func (s *patientService) Update(ctx context.Context, id uuid.UUID, req model.PatientRequest) (*model.PatientResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id)
	}

	req.ApplyTo(existing)
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err, id)
	}

	log.Info().Str("patient_id", id.String()).Msg("Patient updated")
	return updated.ToResponse(), nil
}

func (s *patientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return mapError(err, id)
	}

	count, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.NewPatientHasAppointmentsError()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, id)
	}

	log.Info().Str("patient_id", id.String()).Msg("Patient deleted")
	return nil
}

func (s *patientService) Search(ctx context.Context, term string) ([]*model.PatientResponse, error) {
	patients, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(patients), nil
}

func mapError(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, model.ErrPatientNotFound):
		return model.NewPatientNotFoundError(id)
	case errors.Is(err, model.ErrPatientHasAppointments):
		return model.NewPatientHasAppointmentsError()
	default:
		return fmt.Errorf("patient %s: %w", id, err)
	}
}
