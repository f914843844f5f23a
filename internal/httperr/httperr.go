package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StatusError is an error that already knows which HTTP status it maps to.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

type Body struct {
	Errors []string `json:"errors"`
}

func New(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

func BadRequest(message string) *StatusError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *StatusError {
	return New(http.StatusUnauthorized, message)
}

// Internal hides the underlying cause. Callers log it before building the error.
func Internal(action string) *StatusError {
	return New(http.StatusInternalServerError, fmt.Sprintf("An internal error occurred while %s", action))
}

func Write(c *gin.Context, status int, messages ...string) {
	c.JSON(status, Body{Errors: messages})
}

func Abort(c *gin.Context, status int, messages ...string) {
	c.AbortWithStatusJSON(status, Body{Errors: messages})
}

// Respond renders err. Anything that is not a StatusError becomes a bare 500.
func Respond(c *gin.Context, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		Write(c, se.Status, se.Message)
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("unhandled error")
	Write(c, http.StatusInternalServerError, MsgInternal)
}
