package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/domains/appointment/model"
	"clinic-backend/internal/domains/appointment/repository"
	"clinic-backend/internal/shared"
)

// RecordEventHandler writes appointment:event tasks to the audit trail
type RecordEventHandler struct {
	events repository.EventRepositoryInterface
}

func NewRecordEventHandler(events repository.EventRepositoryInterface) *RecordEventHandler {
	return &RecordEventHandler{events: events}
}

func (h *RecordEventHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.AppointmentEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal appointment event: %v: %w", err, asynq.SkipRetry)
	}

	appointmentID, err := uuid.Parse(payload.AppointmentID)
	if err != nil {
		return fmt.Errorf("invalid appointment id %q: %w", payload.AppointmentID, asynq.SkipRetry)
	}

	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	event := &model.AppointmentEvent{
		AppointmentID: appointmentID,
		EventType:     string(payload.EventType),
		Actor:         payload.Actor,
		Status:        payload.Status,
		OccurredAt:    occurredAt,
	}
	if err := h.events.Insert(ctx, event); err != nil {
		return err
	}

	log.Info().
		Str("appointment_id", payload.AppointmentID).
		Str("event", string(payload.EventType)).
		Str("actor", payload.Actor).
		Msg("Appointment event recorded")
	return nil
}

// CleanupEventsHandler purges audit events past the retention window
type CleanupEventsHandler struct {
	events repository.EventRepositoryInterface
	now    func() time.Time
}

func NewCleanupEventsHandler(events repository.EventRepositoryInterface) *CleanupEventsHandler {
	return &CleanupEventsHandler{events: events, now: time.Now}
}

func (h *CleanupEventsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupAppointmentLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal cleanup payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.RetentionDays < 1 {
		return fmt.Errorf("retention days must be positive, got %d: %w", payload.RetentionDays, asynq.SkipRetry)
	}

	cutoff := h.now().UTC().AddDate(0, 0, -payload.RetentionDays)
	deleted, err := h.events.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	log.Info().
		Time("cutoff", cutoff).
		Int64("events_deleted", deleted).
		Msg("Cleaned up appointment events")
	return nil
}
