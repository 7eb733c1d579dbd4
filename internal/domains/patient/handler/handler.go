package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/domains/patient/model"
	"clinic-backend/internal/domains/patient/service"
	"clinic-backend/internal/shared/request"
	"clinic-backend/internal/shared/response"
)

type PatientHandler struct {
	patientService service.ServiceInterface
}

func NewPatientHandler(patientService service.ServiceInterface) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create registers a patient
// POST /v1/patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req model.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, patient)
}

// Get returns one patient
// GET /v1/patient/:id
func (h *PatientHandler) Get(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patient)
}

// List returns every patient, or one page when ?page is given
// GET /v1/patient
func (h *PatientHandler) List(c *gin.Context) {
	page, paged, msg := request.ParsePage(c)
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}

	if paged {
		patients, total, err := h.patientService.ListPaged(c.Request.Context(), page)
		if err != nil {
			response.HandleError(c, err)
			return
		}
		response.SuccessWithMeta(c, http.StatusOK, patients, response.NewMeta(page.Page, page.Size, total))
		return
	}

	patients, err := h.patientService.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, patients)
}

// Update overwrites a patient
// PUT /v1/patient/:id
func (h *PatientHandler) Update(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	var req model.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, patient)
}

// Delete removes a patient without appointments
// DELETE /v1/patient/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Patient deleted successfully.")
}

// Search matches patients by any name part
// POST /v1/patient/search
func (h *PatientHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	patients, err := h.patientService.Search(c.Request.Context(), strings.TrimSpace(req.Query))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if len(patients) == 0 {
		response.NotFound(c, "No patients found matching query: "+req.Query)
		return
	}

	response.Success(c, http.StatusOK, patients)
}
