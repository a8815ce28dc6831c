package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
)

type CartStore interface {
	List(ctx context.Context, email string) ([]models.CartItem, error)
	Add(ctx context.Context, email string, req models.CartRequest) (*models.CartItem, error)
	Remove(ctx context.Context, email, id string) error
}

type CartHandler struct {
	carts CartStore
}

func NewCartHandler(carts CartStore) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) List(c *gin.Context) {
	email, ok := ownerEmail(c, c.Query("email"))
	if !ok {
		return
	}
	items, err := h.carts.List(c.Request.Context(), email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req models.CartRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.carts.Add(c.Request.Context(), middleware.Email(c), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.carts.Remove(c.Request.Context(), middleware.Email(c), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type WishlistStore interface {
	List(ctx context.Context, email string) ([]models.WishlistItem, error)
	Add(ctx context.Context, email string, req models.WishlistRequest) (*models.WishlistItem, bool, error)
	Remove(ctx context.Context, email, id string) error
	MoveToCart(ctx context.Context, email, id string) (*models.CartItem, error)
}

type WishlistHandler struct {
	wishlist WishlistStore
}

func NewWishlistHandler(wishlist WishlistStore) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

func (h *WishlistHandler) List(c *gin.Context) {
	email, ok := ownerEmail(c, c.Query("email"))
	if !ok {
		return
	}
	items, err := h.wishlist.List(c.Request.Context(), email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var req models.WishlistRequest
	if !bindJSON(c, &req) {
		return
	}
	item, created, err := h.wishlist.Add(c.Request.Context(), middleware.Email(c), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, item)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	if err := h.wishlist.Remove(c.Request.Context(), middleware.Email(c), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// MoveToCart handles POST /wishlist/:id/cart.
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	item, err := h.wishlist.MoveToCart(c.Request.Context(), middleware.Email(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}
