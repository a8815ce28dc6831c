package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
)

type PaymentStore interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	Record(ctx context.Context, email string, req models.PaymentRequest) (*models.PaymentResult, error)
	History(ctx context.Context, email string) ([]models.Payment, error)
}

type PaymentHandler struct {
	payments PaymentStore
}

func NewPaymentHandler(payments PaymentStore) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req models.PaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	secret, err := h.payments.CreateIntent(c.Request.Context(), req.Price)
	if errors.Is(err, services.ErrNoPaymentProvider) {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
		return
	}
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// Record stores a completed checkout and clears the paid cart items.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req models.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.payments.Record(c.Request.Context(), middleware.Email(c), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *PaymentHandler) History(c *gin.Context) {
	email, ok := ownerEmail(c, c.Param("email"))
	if !ok {
		return
	}
	history, err := h.payments.History(c.Request.Context(), email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
