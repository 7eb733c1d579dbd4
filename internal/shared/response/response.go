package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta builds pagination metadata for a zero-based page.
func NewMeta(page, size int, total int64) *Meta {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Meta{Page: page, Size: size, Total: total, TotalPages: totalPages}
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Message answers {"success":true,"data":{"message":...}}
func Message(c *gin.Context, statusCode int, message string) {
	Success(c, statusCode, gin.H{"message": message})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// HandleError translates a service error into a response. Unknown errors
// surface their raw message with 500.
func HandleError(c *gin.Context, err error) {
	var dateErr *shared.DateFormatError
	if errors.As(err, &dateErr) {
		BadRequest(c, dateErr.Hint)
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status := apperror.HTTPStatus(appErr.Kind)
		if appErr.Fields != nil {
			ErrorWithDetails(c, status, appErr.Code, appErr.Message, appErr.Fields)
			return
		}
		ErrorResponse(c, status, appErr.Code, appErr.Message)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
	InternalServerError(c, "An unexpected error occurred: "+err.Error())
}

// HandleBindError answers a request body that failed to decode or bind.
func HandleBindError(c *gin.Context, err error) {
	if vErr := apperror.FromValidation(err); vErr != nil {
		HandleError(c, vErr)
		return
	}

	var dateErr *shared.DateFormatError
	if errors.As(err, &dateErr) {
		BadRequest(c, dateErr.Hint)
		return
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		BadRequest(c, "Malformed JSON request: request body is empty")
	case errors.As(err, &typeErr):
		BadRequest(c, "Malformed JSON request: field "+typeErr.Field+" has the wrong type")
	default:
		BadRequest(c, "Malformed JSON request: "+err.Error())
	}
}
