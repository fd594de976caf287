package kafka

import (
	"context"
	"fmt"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

// OrderStatusChangedHandler applies operator-side status changes arriving on
// Kafka. Status is only ever advanced from outside the checkout path, so the
// repo write is the single source of truth and the cache follows best-effort.
type OrderStatusChangedHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.OrderCache // optional
}

func NewOrderStatusChangedHandler(repo usecase.OrderRepo, cache usecase.OrderCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Repo: repo, Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	newStatus := domain.Status(ev.Status)
	if !domain.ValidStatus(newStatus) {
		return fmt.Errorf("unknown order status %q for order %s", ev.Status, ev.OrderID)
	}

	if err := h.Repo.UpdateStatus(ctx, ev.OrderID, newStatus); err != nil {
		return err
	}

	// Cache best-effort
	if h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, string(newStatus))
	}
	return nil
}
