package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"clinic-backend/internal/shared"
)

// NewAppointmentEventTask builds the task recording one lifecycle event
func NewAppointmentEventTask(event shared.AppointmentEventPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal appointment event: %w", err)
	}
	return asynq.NewTask(shared.TypeRecordAppointmentEvent, payload), nil
}

// AsynqPublisher enqueues appointment events for the worker
type AsynqPublisher struct {
	client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{client: client}
}

func (p *AsynqPublisher) Publish(ctx context.Context, event shared.AppointmentEventPayload) error {
	task, err := NewAppointmentEventTask(event)
	if err != nil {
		return err
	}

	_, err = p.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeRecordAppointmentEvent, err)
	}
	return nil
}

// NoopPublisher drops events; used when the queue is disabled
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, shared.AppointmentEventPayload) error {
	return nil
}
