package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// WriteError maps the engine error taxonomy onto HTTP responses.
func WriteError(c *gin.Context, err error) {
	var be BusinessError
	var ite InvalidTransitionError
	var sse StaleStateError

	switch {
	case errors.As(err, &be):
		BadRequest(c, be.Code, be.Message)
	case errors.As(err, &ite):
		Conflict(c, "invalid_transition", ite.Error())
	case errors.As(err, &sse):
		Conflict(c, "stale_state", sse.Error())
	case errors.Is(err, ErrNotFound):
		NotFound(c, "not_found", "Appointment not found.")
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(c, "unauthorized", "Not allowed.")
	default:
		Internal(c, "internal_error", "Unexpected error.")
	}
}
