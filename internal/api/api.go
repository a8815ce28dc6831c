// Package api holds the HTTP handlers and the route table.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/middleware"
)

// bindJSON decodes and validates the body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apperr.Respond(c, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return false
	}
	return true
}

// ownerEmail returns the email a per-user route acts on. An explicit email
// must be the caller's own; an omitted one defaults to the caller.
func ownerEmail(c *gin.Context, requested string) (string, bool) {
	caller := middleware.Email(c)
	if requested != "" && requested != caller {
		apperr.Respond(c, apperr.ErrForbidden)
		return "", false
	}
	return caller, true
}
