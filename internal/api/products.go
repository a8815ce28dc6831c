package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
	"storefront-backend/internal/query"
)

type ProductStore interface {
	List(ctx context.Context, spec query.FilterSpec) ([]models.ProductView, error)
	Get(ctx context.Context, id string) (*models.ProductDetail, error)
	Create(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	Replace(ctx context.Context, id string, req models.ProductRequest) error
	Patch(ctx context.Context, id string, patch models.ProductPatch) error
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID, email string, in models.ReviewInput) (*models.ProductReview, error)
}

type ProductHandler struct {
	products ProductStore
}

func NewProductHandler(products ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /products?search=&category=&minPrice=&maxPrice=&sortBy=&order=&page=&limit=
func (h *ProductHandler) List(c *gin.Context) {
	var params query.ProductParams
	if err := c.ShouldBindQuery(&params); err != nil {
		apperr.Respond(c, apperr.ErrValidation)
		return
	}
	products, err := h.products.List(c.Request.Context(), query.Build(params))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if product == nil {
		apperr.Respond(c, apperr.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Replace(c *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.products.Replace(c.Request.Context(), c.Param("id"), req); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": true})
}

func (h *ProductHandler) Patch(c *gin.Context) {
	var patch models.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	if err := h.products.Patch(c.Request.Context(), c.Param("id"), patch); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": true})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AddReview appends the caller's review to a product.
func (h *ProductHandler) AddReview(c *gin.Context) {
	var in models.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.products.AddReview(c.Request.Context(), c.Param("productId"), middleware.Email(c), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
