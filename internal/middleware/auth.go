package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/models"
)

const (
	emailKey = "userEmail"
	roleKey  = "userRole"
)

// Verifier checks the raw Authorization header.
type Verifier interface {
	Verify(header string) (*auth.Claims, error)
}

// RoleAuthorizer resolves the elevated role of an authenticated email.
type RoleAuthorizer interface {
	Authorize(ctx context.Context, email string) (models.Role, error)
}

// AuthMiddleware guards routes with token verification and the admin role check.
type AuthMiddleware struct {
	tokens Verifier
	roles  RoleAuthorizer
}

func NewAuthMiddleware(tokens Verifier, roles RoleAuthorizer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, roles: roles}
}

// AuthRequired verifies the bearer token and stores the caller's email.
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.tokens.Verify(c.GetHeader("Authorization"))
		if err != nil {
			apperr.Abort(c, err)
			return
		}
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired. It lets admin and demo-admin
// through and stores the resolved role.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := Email(c)
		if email == "" {
			apperr.Abort(c, apperr.ErrMissingCredential)
			return
		}
		role, err := m.roles.Authorize(c.Request.Context(), email)
		if err != nil {
			apperr.Abort(c, err)
			return
		}
		c.Set(roleKey, role)
		c.Next()
	}
}

// Email is the verified caller, or "" on unauthenticated routes.
func Email(c *gin.Context) string {
	return c.GetString(emailKey)
}

// Role is set only on routes behind AdminRequired.
func Role(c *gin.Context) models.Role {
	role, _ := c.Get(roleKey)
	r, _ := role.(models.Role)
	return r
}
