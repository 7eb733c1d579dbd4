package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/domains/doctor/model"
	"clinic-backend/internal/shared/utils"
	"clinic-backend/pkg/cache"
)

const (
	doctorCacheKeyPrefix = "doctor:"

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	doctorColumns = `id, username, first_name, last_name, created_at, updated_at`
)

// postgresRepository implements RepositoryInterface.
// GetByID is read-through cached; writes invalidate the entry.
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) RepositoryInterface {
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func scanDoctor(row pgx.Row) (*model.Doctor, error) {
	var d model.Doctor
	err := row.Scan(&d.ID, &d.Username, &d.FirstName, &d.LastName, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDoctors(rows pgx.Rows) ([]*model.Doctor, error) {
	defer rows.Close()

	doctors := make([]*model.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Create inserts a doctor and returns the stored row
func (r *postgresRepository) Create(ctx context.Context, d *model.Doctor) (*model.Doctor, error) {
	query := `
		INSERT INTO doctors (username, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING ` + doctorColumns

	created, err := scanDoctor(r.pool.QueryRow(ctx, query, d.Username, d.FirstName, d.LastName))
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, model.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return created, nil
}

// GetByID retrieves a doctor by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	cacheKey := doctorCacheKeyPrefix + id.String()

	var cached model.Doctor
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`
	d, err := scanDoctor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, d, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("doctor_id", id.String()).Msg("failed to cache doctor")
	}
	return d, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Doctor, error) {
	if len(ids) == 0 {
		return []*model.Doctor{}, nil
	}

	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = ANY($1::uuid[])`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctors: %w", err)
	}
	return collectDoctors(rows)
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctors WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY last_name, first_name, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return collectDoctors(rows)
}

func (r *postgresRepository) ListPaged(ctx context.Context, limit, offset int) ([]*model.Doctor, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := `SELECT ` + doctorColumns + `
		FROM doctors
		ORDER BY last_name, first_name, id
		LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	doctors, err := collectDoctors(rows)
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// Search matches the term case-insensitively against first name, last name,
// username and both full-name orders.
func (r *postgresRepository) Search(ctx context.Context, term string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR username ILIKE $1
		   OR (first_name || ' ' || last_name) ILIKE $1
		   OR (last_name || ' ' || first_name) ILIKE $1
		ORDER BY last_name, first_name, id`

	rows, err := r.pool.Query(ctx, query, utils.ContainsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return collectDoctors(rows)
}

func (r *postgresRepository) Update(ctx context.Context, d *model.Doctor) (*model.Doctor, error) {
	query := `
		UPDATE doctors
		SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + doctorColumns

	updated, err := scanDoctor(r.pool.QueryRow(ctx, query, d.ID, d.Username, d.FirstName, d.LastName))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, model.ErrDoctorNotFound
		case isPgError(err, pgUniqueViolation):
			return nil, model.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	r.invalidate(ctx, d.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return model.ErrDoctorHasAppointments
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDoctorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) CountAppointments(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM doctor_appointments WHERE doctor_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count doctor appointments: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, doctorCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("doctor_id", id.String()).Msg("failed to invalidate doctor cache")
	}
}
