package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

// OrderStatusHandler serves the customer-facing status lookup for an order ID
// handed out at checkout. The Redis cache is consulted first; it is kept warm
// by the broker consumers, so most polls never touch MySQL.
type OrderStatusHandler struct {
	cache usecase.OrderCache
	repo  usecase.OrderRepo
}

func NewOrderStatusHandler(cache usecase.OrderCache, repo usecase.OrderRepo) *OrderStatusHandler {
	return &OrderStatusHandler{cache: cache, repo: repo}
}

// GetStatus returns the current status of one order. A cache miss falls back
// to the repo and re-warms the cache best-effort.
func (h *OrderStatusHandler) GetStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	id := c.Param("id")
	if st, ok, err := h.cache.GetStatus(ctx, id); err == nil && ok {
		c.JSON(http.StatusOK, gin.H{"id": id, "status": st})
		return
	}

	o, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query_failed"})
		return
	}

	_ = h.cache.SetStatus(ctx, id, string(o.Status))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(o.Status)})
}
