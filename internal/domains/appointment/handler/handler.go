package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/domains/appointment/model"
	"clinic-backend/internal/domains/appointment/service"
	"clinic-backend/internal/shared/middleware"
	"clinic-backend/internal/shared/request"
	"clinic-backend/internal/shared/response"
)

// =====================================================
// APPOINTMENT HANDLER
// =====================================================

type AppointmentHandler struct {
	appointmentService service.ServiceInterface
}

func NewAppointmentHandler(appointmentService service.ServiceInterface) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create books an appointment as the acting user
// POST /v1/appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	// Step 2: Call service with the acting username
	appointment, err := h.appointmentService.Create(c.Request.Context(), req, middleware.ActingUsername(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, appointment)
}

// Get returns one appointment
// GET /v1/appointment/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	appointment, err := h.appointmentService.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, appointment)
}

// List returns every appointment, possibly empty
// GET /v1/appointment
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointmentService.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, appointments)
}

// ListByDoctor returns appointments assigned to a doctor
// GET /v1/appointment/doctor/:id
func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	appointments, err := h.appointmentService.ListByDoctor(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if len(appointments) == 0 {
		response.NotFound(c, "No appointments found for doctor with ID: "+id.String())
		return
	}

	response.Success(c, http.StatusOK, appointments)
}

// ListByPatient returns appointments of a patient
// GET /v1/appointment/patient/:id
func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	appointments, err := h.appointmentService.ListByPatient(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if len(appointments) == 0 {
		response.NotFound(c, "No appointments found for patient with ID: "+id.String())
		return
	}

	response.Success(c, http.StatusOK, appointments)
}

// Cancel marks an appointment Cancelled; creator only
// PUT /v1/appointment/cancel/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	appointment, err := h.appointmentService.Cancel(c.Request.Context(), id, middleware.ActingUsername(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, appointment)
}

// Update reschedules an appointment; creator only
// PUT /v1/appointment/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	// Step 1: Parse appointment ID
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	// Step 2: Bind request body
	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	// Step 3: Call service
	appointment, err := h.appointmentService.Update(c.Request.Context(), id, req, middleware.ActingUsername(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, appointment)
}

// Delete removes an appointment; creator only
// DELETE /v1/appointment/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	if err := h.appointmentService.Delete(c.Request.Context(), id, middleware.ActingUsername(c)); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Appointment deleted successfully.")
}

// History returns the audit trail of an appointment
// GET /v1/appointment/:id/events
func (h *AppointmentHandler) History(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	events, err := h.appointmentService.History(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, events)
}
