package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/models"
)

type StatsStore interface {
	AdminStats(ctx context.Context) (models.AdminStats, error)
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)
}

type StatsHandler struct {
	stats StatsStore
}

func NewStatsHandler(stats StatsStore) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) AdminStats(c *gin.Context) {
	stats, err := h.stats.AdminStats(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) OrderStats(c *gin.Context) {
	stats, err := h.stats.OrderStats(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the store answers a ping.
func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
