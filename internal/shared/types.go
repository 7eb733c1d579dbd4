package shared

import "time"

// AppointmentEventType names a lifecycle change of an appointment
type AppointmentEventType string

const (
	EventAppointmentCreated   AppointmentEventType = "created"
	EventAppointmentUpdated   AppointmentEventType = "updated"
	EventAppointmentCancelled AppointmentEventType = "cancelled"
	EventAppointmentDeleted   AppointmentEventType = "deleted"

	TypeRecordAppointmentEvent = "appointment:event"
	TypeCleanupAppointmentLog  = "appointment:cleanup_events"

	QueueDefault = "default"
	QueueLow     = "low"
)

// AppointmentEventPayload is the body of an appointment:event task
type AppointmentEventPayload struct {
	AppointmentID string               `json:"appointmentId"`
	EventType     AppointmentEventType `json:"eventType"`
	Actor         string               `json:"actor"`
	Status        string               `json:"status,omitempty"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// CleanupAppointmentLogPayload is the body of the scheduled cleanup task
type CleanupAppointmentLogPayload struct {
	RetentionDays int `json:"retentionDays"`
}
