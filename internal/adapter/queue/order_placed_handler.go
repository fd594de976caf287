package queue

import (
	"context"

	"github.com/quocluongg/telectric-web-sub001/internal/logging"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

// OrderPlacedHandler warms the order-status cache when a checkout announces
// itself, so status lookups for fresh orders never have to reach MySQL.
type OrderPlacedHandler struct {
	Cache usecase.OrderCache
}

func NewOrderPlacedHandler(cache usecase.OrderCache) *OrderPlacedHandler {
	return &OrderPlacedHandler{Cache: cache}
}

// HandlePlaced is intended to be used with the JSON adapter
// (queue.JSONHandler[usecase.PlacedMsg]).
func (h *OrderPlacedHandler) HandlePlaced(ctx context.Context, msg usecase.PlacedMsg) error {
	if err := h.Cache.SetStatus(ctx, msg.OrderID, msg.Status); err != nil {
		return err
	}
	logging.FromCtx(ctx).Info("order placed", "order_id", msg.OrderID, "total", msg.TotalAmount)
	return nil
}
