package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-backend/internal/domains/appointment/model"
)

type eventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepositoryInterface {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Insert(ctx context.Context, e *model.AppointmentEvent) error {
	var status *string
	if e.Status != "" {
		status = &e.Status
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointment_events (appointment_id, event_type, actor, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at`,
		e.AppointmentID, e.EventType, e.Actor, status, e.OccurredAt,
	).Scan(&e.ID, &e.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert appointment event: %w", err)
	}
	return nil
}

func (r *eventRepository) ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, appointment_id, event_type, actor, COALESCE(status, ''), occurred_at, recorded_at
		FROM appointment_events
		WHERE appointment_id = $1
		ORDER BY occurred_at, id`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.AppointmentEvent, 0)
	for rows.Next() {
		var e model.AppointmentEvent
		if err := rows.Scan(&e.ID, &e.AppointmentID, &e.EventType, &e.Actor, &e.Status, &e.OccurredAt, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan appointment event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *eventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointment_events WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge appointment events: %w", err)
	}
	return tag.RowsAffected(), nil
}
