package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-backend/internal/shared"
)

func TestNewAppointmentEventTask(t *testing.T) {
	event := shared.AppointmentEventPayload{
		AppointmentID: "6f1c7a53-2f4e-4a55-9d6b-0c7c2f1e9a10",
		EventType:     shared.EventAppointmentCancelled,
		Actor:         "ghouse",
		Status:        "Cancelled",
		OccurredAt:    time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC),
	}

	task, err := NewAppointmentEventTask(event)
	require.NoError(t, err)
	assert.Equal(t, shared.TypeRecordAppointmentEvent, task.Type())

	var decoded shared.AppointmentEventPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, event, decoded)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), shared.AppointmentEventPayload{}))
}
