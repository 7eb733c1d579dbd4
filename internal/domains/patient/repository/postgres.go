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

	"clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/shared/utils"
	"clinic-backend/pkg/cache"
)

const (
	patientCacheKeyPrefix = "patient:"

	patientColumns = `id, first_name, last_name, middle_name, date_of_birth, created_at, updated_at`
)

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

func scanPatient(row pgx.Row) (*model.Patient, error) {
	var p model.Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.MiddleName, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows) ([]*model.Patient, error) {
	defer rows.Close()

	patients := make([]*model.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Patient) (*model.Patient, error) {
	query := `
		INSERT INTO patients (first_name, last_name, middle_name, date_of_birth)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + patientColumns

	created, err := scanPatient(r.pool.QueryRow(ctx, query, p.FirstName, p.LastName, p.MiddleName, p.DateOfBirth))
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return created, nil
}

// GetByID retrieves a patient by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	cacheKey := patientCacheKeyPrefix + id.String()

	var cached model.Patient
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	p, err := scanPatient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, p, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("patient_id", id.String()).Msg("failed to cache patient")
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY last_name, first_name, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return collectPatients(rows)
}

func (r *postgresRepository) ListPaged(ctx context.Context, limit, offset int) ([]*model.Patient, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `SELECT ` + patientColumns + `
		FROM patients
		ORDER BY last_name, first_name, id
		LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	patients, err := collectPatients(rows)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// Search matches first, last or middle name case-insensitively
func (r *postgresRepository) Search(ctx context.Context, term string) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients
		WHERE first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR middle_name ILIKE $1
		ORDER BY last_name, first_name, id`

	rows, err := r.pool.Query(ctx, query, utils.ContainsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return collectPatients(rows)
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Patient) (*model.Patient, error) {
	query := `
		UPDATE patients
		SET first_name = $2, last_name = $3, middle_name = $4, date_of_birth = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + patientColumns

	updated, err := scanPatient(r.pool.QueryRow(ctx, query, p.ID, p.FirstName, p.LastName, p.MiddleName, p.DateOfBirth))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	r.invalidate(ctx, p.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrPatientHasAppointments
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPatientNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) CountAppointments(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count patient appointments: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, patientCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("patient_id", id.String()).Msg("failed to invalidate patient cache")
	}
}
