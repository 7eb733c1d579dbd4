package service

import (
	"context"

	"github.com/google/uuid"

	"clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/shared"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.PatientRequest) (*model.PatientResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.PatientResponse, error)
	List(ctx context.Context) ([]*model.PatientResponse, error)
	ListPaged(ctx context.Context, page shared.PageRequest) ([]*model.PatientResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req model.PatientRequest) (*model.PatientResponse, error)

	// Delete refuses while any appointment references the patient
	Delete(ctx context.Context, id uuid.UUID) error

	Search(ctx context.Context, term string) ([]*model.PatientResponse, error)
}
