package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
)

var ErrEmptyCart = errors.New("cart is empty")

type PlaceOrderInput struct {
	CartID          string
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   domain.PaymentMethod
	Notes           string
	CustomerEmail   string
	NotifyCustomer  bool
}

// PlaceOrder runs the checkout flow: snapshot the cart, persist the order,
// dispatch the two notification messages, and only on total success clear
// the cart (which fires the change bus) and announce the order on the broker.
type PlaceOrder struct {
	cart   *CartStore
	repo   OrderRepo
	notify *DispatchOrder
	events OrderEvents // optional
}

func NewPlaceOrder(cart *CartStore, repo OrderRepo, notify *DispatchOrder, events OrderEvents) *PlaceOrder {
	return &PlaceOrder{cart: cart, repo: repo, notify: notify, events: events}
}

func variantName(attrs []domain.Attribute) string {
	vals := make([]string, 0, len(attrs))
	for _, a := range attrs {
		vals = append(vals, a.Value)
	}
	return strings.Join(vals, " / ")
}

func (uc *PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	snapshot := uc.cart.Read(ctx, in.CartID)
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(snapshot.Items))
	for _, it := range snapshot.Items {
		items = append(items, domain.OrderItem{
			ProductName: it.ProductName,
			VariantName: variantName(it.Attributes),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		Items:           items,
		TotalAmount:     snapshot.Total(),
		Status:          domain.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := uc.notify.Execute(ctx, order, in.CustomerEmail, in.NotifyCustomer); err != nil {
		return nil, err
	}

	if err := uc.cart.Clear(ctx, in.CartID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	// Broker announcement is best-effort; the order is already recorded and
	// both notifications are out.
	if uc.events != nil {
		msg := PlacedMsg{
			OrderID:      order.ID,
			CustomerName: order.CustomerName,
			TotalAmount:  order.TotalAmount,
			Status:       string(order.Status),
		}
		if err := uc.events.PublishPlaced(ctx, msg); err != nil {
			logging.FromCtx(ctx).Warn("order.placed publish failed", "order_id", order.ID, "err", err)
		}
	}

	return order, nil
}
