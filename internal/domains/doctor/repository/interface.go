package repository

import (
	"context"

	"github.com/google/uuid"

	"clinic-backend/internal/domains/doctor/model"
)

// RepositoryInterface defines data access for doctors
type RepositoryInterface interface {
	Create(ctx context.Context, d *model.Doctor) (*model.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error)

	// GetByIDs resolves every id it can; missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Doctor, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	List(ctx context.Context) ([]*model.Doctor, error)
	ListPaged(ctx context.Context, limit, offset int) ([]*model.Doctor, int64, error)
	Search(ctx context.Context, term string) ([]*model.Doctor, error)

	Update(ctx context.Context, d *model.Doctor) (*model.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountAppointments returns how many appointments reference the doctor.
	CountAppointments(ctx context.Context, id uuid.UUID) (int64, error)
}
