package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
)

type BlogStore interface {
	List(ctx context.Context) ([]models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, req models.BlogRequest) (*models.Blog, error)
	Patch(ctx context.Context, id string, patch models.BlogPatch) error
	Delete(ctx context.Context, id string) error
}

type BlogHandler struct {
	blogs BlogStore
}

func NewBlogHandler(blogs BlogStore) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req models.BlogRequest
	if !bindJSON(c, &req) {
		return
	}
	blog, err := h.blogs.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

func (h *BlogHandler) Patch(c *gin.Context) {
	var patch models.BlogPatch
	if !bindJSON(c, &patch) {
		return
	}
	if err := h.blogs.Patch(c.Request.Context(), c.Param("id"), patch); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": true})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type ReviewStore interface {
	List(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, email string, req models.SiteReviewRequest) (*models.Review, error)
}

// ReviewHandler serves storefront testimonials. Product reviews live on
// ProductHandler.
type ReviewHandler struct {
	reviews ReviewStore
}

func NewReviewHandler(reviews ReviewStore) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req models.SiteReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.reviews.Create(c.Request.Context(), middleware.Email(c), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
