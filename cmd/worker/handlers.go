package main

import (
	"github.com/hibiken/asynq"

	appointmentJob "clinic-backend/internal/domains/appointment/job"
	"clinic-backend/internal/shared"
	"clinic-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	recordEvent   *appointmentJob.RecordEventHandler
	cleanupEvents *appointmentJob.CleanupEventsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		recordEvent:   appointmentJob.NewRecordEventHandler(c.AppointmentEventRepo),
		cleanupEvents: appointmentJob.NewCleanupEventsHandler(c.AppointmentEventRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeRecordAppointmentEvent, h.recordEvent.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupAppointmentLog, h.cleanupEvents.ProcessTask)
}
