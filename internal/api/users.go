package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/models"
)

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, bool, error)
	MakeAdmin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type UserHandler struct {
	users  UserStore
	tokens TokenIssuer
	admins AdminChecker
}

func NewUserHandler(users UserStore, tokens TokenIssuer, admins AdminChecker) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, admins: admins}
}

// IssueToken handles POST /jwt.
func (h *UserHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create answers 201 for a new user and 200 with the stored record when the
// email is already known.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, created, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// IsAdmin handles GET /users/admin/:email for the caller's own email.
func (h *UserHandler) IsAdmin(c *gin.Context) {
	email, ok := ownerEmail(c, c.Param("email"))
	if !ok {
		return
	}
	admin, err := h.admins.IsAdmin(c.Request.Context(), email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (h *UserHandler) MakeAdmin(c *gin.Context) {
	if err := h.users.MakeAdmin(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": true})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
