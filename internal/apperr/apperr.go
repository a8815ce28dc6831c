// Package apperr defines the error kinds handlers and middleware translate
// into HTTP responses.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingCredential = errors.New("unauthorized access")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrForbidden         = errors.New("forbidden access")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid request")
)

// StatusCode maps an error to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidCredential), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message is the client-facing text for err. Store and provider failures
// are reported generically; their detail stays in the request log.
func Message(err error) string {
	if StatusCode(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// Respond writes err as a {"message": ...} body and records it on the
// context so the request logger can report the cause.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(StatusCode(err), gin.H{"message": Message(err)})
}

// Abort is Respond for middleware: it stops the handler chain.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusCode(err), gin.H{"message": Message(err)})
}
