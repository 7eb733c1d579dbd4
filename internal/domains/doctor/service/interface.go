package service

import (
	"context"

	"github.com/google/uuid"

	"clinic-backend/internal/domains/doctor/model"
	"clinic-backend/internal/shared"
)

type ServiceInterface interface {
	// Create registers a doctor; the username must not exist yet
	Create(ctx context.Context, req model.DoctorRequest) (*model.DoctorResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.DoctorResponse, error)

	List(ctx context.Context) ([]*model.DoctorResponse, error)

	// ListPaged returns one page plus the total doctor count
	ListPaged(ctx context.Context, page shared.PageRequest) ([]*model.DoctorResponse, int64, error)

	// Update overwrites username and names
	Update(ctx context.Context, id uuid.UUID, req model.DoctorRequest) (*model.DoctorResponse, error)

	// Delete refuses while any appointment references the doctor
	Delete(ctx context.Context, id uuid.UUID) error

	Search(ctx context.Context, term string) ([]*model.DoctorResponse, error)
}
