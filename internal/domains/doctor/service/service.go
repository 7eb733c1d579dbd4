package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/domains/doctor/model"
	"clinic-backend/internal/domains/doctor/repository"
	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

type doctorService struct {
	repo repository.RepositoryInterface
}

func NewDoctorService(repo repository.RepositoryInterface) ServiceInterface {
	return &doctorService{repo: repo}
}

func (s *doctorService) Create(ctx context.Context, req model.DoctorRequest) (*model.DoctorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.NewUsernameTakenError(req.Username)
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		// lost a race against a concurrent create
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, model.NewUsernameTakenError(req.Username)
		}
		return nil, err
	}

	log.Info().
		Str("doctor_id", created.ID.String()).
		Str("username", created.Username).
		Msg("Doctor created")

	return created.ToResponse(), nil
}

func (s *doctorService) GetByID(ctx context.Context, id uuid.UUID) (*model.DoctorResponse, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "")
	}
	return d.ToResponse(), nil
}

func (s *doctorService) List(ctx context.Context) ([]*model.DoctorResponse, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(doctors), nil
}

func (s *doctorService) ListPaged(ctx context.Context, page shared.PageRequest) ([]*model.DoctorResponse, int64, error) {
	page = page.Normalize()
	doctors, total, err := s.repo.ListPaged(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return model.ToResponses(doctors), total, nil
}

func (s *doctorService) Update(ctx context.Context, id uuid.UUID, req model.DoctorRequest) (*model.DoctorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "")
	}

	req.ApplyTo(existing)
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, s.mapError(err, id, req.Username)
	}

	log.Info().Str("doctor_id", id.String()).Msg("Doctor updated")
	return updated.ToResponse(), nil
}

func (s *doctorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return s.mapError(err, id, "")
	}

	count, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.NewDoctorHasAppointmentsError()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, id, "")
	}

	log.Info().Str("doctor_id", id.String()).Msg("Doctor deleted")
	return nil
}

func (s *doctorService) Search(ctx context.Context, term string) ([]*model.DoctorResponse, error) {
	doctors, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(doctors), nil
}

// mapError converts repository sentinels into business errors
func (s *doctorService) mapError(err error, id uuid.UUID, username string) error {
	switch {
	case errors.Is(err, model.ErrDoctorNotFound):
		return model.NewDoctorNotFoundError(id)
	case errors.Is(err, model.ErrUsernameTaken):
		return model.NewUsernameTakenError(username)
	case errors.Is(err, model.ErrDoctorHasAppointments):
		return model.NewDoctorHasAppointmentsError()
	default:
		return fmt.Errorf("doctor %s: %w", id, err)
	}
}
