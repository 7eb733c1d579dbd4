package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/domains/doctor/model"
	"clinic-backend/internal/domains/doctor/service"
	"clinic-backend/internal/shared/request"
	"clinic-backend/internal/shared/response"
)

// =====================================================
// DOCTOR HANDLER
// =====================================================

type DoctorHandler struct {
	doctorService service.ServiceInterface
}

func NewDoctorHandler(doctorService service.ServiceInterface) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// Create registers a doctor
// POST /v1/doctor
func (h *DoctorHandler) Create(c *gin.Context) {
	// Step 1: Bind request body
	var req model.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	// Step 2: Call service (validates)
	doctor, err := h.doctorService.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doctor)
}

// Get returns one doctor
// GET /v1/doctor/:id
func (h *DoctorHandler) Get(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	doctor, err := h.doctorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, doctor)
}

// List returns every doctor, or one page when ?page is given
// GET /v1/doctor
func (h *DoctorHandler) List(c *gin.Context) {
	page, paged, msg := request.ParsePage(c)
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}

	if paged {
		doctors, total, err := h.doctorService.ListPaged(c.Request.Context(), page)
		if err != nil {
			response.HandleError(c, err)
			return
		}
		response.SuccessWithMeta(c, http.StatusOK, doctors, response.NewMeta(page.Page, page.Size, total))
		return
	}

	doctors, err := h.doctorService.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, doctors)
}

// Update overwrites a doctor
// PUT /v1/doctor/:id
func (h *DoctorHandler) Update(c *gin.Context) {
	// Step 1: Parse doctor ID
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	// Step 2: Bind request body
	var req model.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(c, err)
		return
	}

	// Step 3: Call service
	doctor, err := h.doctorService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, doctor)
}

// Delete removes a doctor without appointments
// DELETE /v1/doctor/:id
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, msg, ok := request.ParseUUID(c, "id")
	if !ok {
		response.BadRequest(c, msg)
		return
	}

	if err := h.doctorService.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Doctor deleted successfully.")
}

// Search matches doctors by name or username
// GET /v1/doctor/search?query=
func (h *DoctorHandler) Search(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		response.BadRequest(c, "Missing required parameter: query")
		return
	}

	doctors, err := h.doctorService.Search(c.Request.Context(), strings.TrimSpace(query))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if len(doctors) == 0 {
		response.NotFound(c, "No doctors found matching query: "+query)
		return
	}

	response.Success(c, http.StatusOK, doctors)
}
