package repository

import (
	"context"

	"github.com/google/uuid"

	"clinic-backend/internal/domains/patient/model"
)

// RepositoryInterface defines data access for patients
type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Patient) (*model.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	ListPaged(ctx context.Context, limit, offset int) ([]*model.Patient, int64, error)
	Search(ctx context.Context, term string) ([]*model.Patient, error)
	Update(ctx context.Context, p *model.Patient) (*model.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAppointments(ctx context.Context, id uuid.UUID) (int64, error)
}
