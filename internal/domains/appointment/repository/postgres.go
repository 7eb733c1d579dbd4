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

	"clinic-backend/internal/domains/appointment/model"
	"clinic-backend/pkg/database"
)

// selectAppointments aggregates the doctor ids of each appointment
const selectAppointments = `
	SELECT a.id, a.patient_id, a.appointment_time, a.status, a.created_by, a.created_at, a.updated_at,
	       COALESCE(array_agg(da.doctor_id ORDER BY da.doctor_id) FILTER (WHERE da.doctor_id IS NOT NULL), '{}') AS doctor_ids
	FROM appointments a
	LEFT JOIN doctor_appointments da ON da.appointment_id = a.id`

const groupAppointments = `
	GROUP BY a.id`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.AppointmentTime,
		&a.Status,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DoctorIDs,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) query(ctx context.Context, where string, args ...interface{}) ([]*model.Appointment, error) {
	sql := selectAppointments + where + groupAppointments + `
	ORDER BY a.appointment_time, a.id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]*model.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO appointments (patient_id, appointment_time, status, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			a.PatientID, a.AppointmentTime, a.Status, a.CreatedBy,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, err
		}

		batch := &pgx.Batch{}
		for _, doctorID := range a.DoctorIDs {
			batch.Queue(`INSERT INTO doctor_appointments (appointment_id, doctor_id) VALUES ($1, $2)`, id, doctorID)
		}
		return id, tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, model.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	list, err := r.query(ctx, `
	WHERE a.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, model.ErrAppointmentNotFound
	}
	return list[0], nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.query(ctx, "")
}

func (r *postgresRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return r.query(ctx, `
	WHERE a.id IN (SELECT appointment_id FROM doctor_appointments WHERE doctor_id = $1)`, doctorID)
}

func (r *postgresRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return r.query(ctx, `
	WHERE a.patient_id = $1`, patientID)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Appointment, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrAppointmentNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepository) UpdateTime(ctx context.Context, id uuid.UUID, at time.Time) (*model.Appointment, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET appointment_time = $2, updated_at = NOW() WHERE id = $1`, id, at)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrAppointmentNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM doctor_appointments WHERE appointment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete doctor assignments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAppointmentNotFound
		}
		return nil
	})
}
