package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrryniu/invoice-ingest/internal/common"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 for queued submissions.
func RespondAccepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates core errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, common.ErrUnsupportedMediaType):
		return http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", "media type must be pdf, jpeg or png"
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, common.ErrJobNotFound):
		return http.StatusNotFound, "JOB_NOT_FOUND", "job not found (it may have been swept)"
	case errors.Is(err, common.ErrTimeout):
		return http.StatusRequestTimeout, "WAIT_TIMEOUT", "job did not finish within the wait timeout"
	case errors.Is(err, common.ErrJobFailed):
		return http.StatusUnprocessableEntity, "JOB_FAILED", err.Error()
	case errors.Is(err, common.ErrQueueFull):
		return http.StatusServiceUnavailable, "QUEUE_FULL", "the processing queue is full, retry later"
	case errors.Is(err, common.ErrExtraction):
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a core error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	RespondError(c, status, code, msg)
}
