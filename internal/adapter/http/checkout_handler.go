package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/observ"
	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

type CheckoutHandler struct {
	place *usecase.PlaceOrder
}

func NewCheckoutHandler(place *usecase.PlaceOrder) *CheckoutHandler {
	return &CheckoutHandler{place: place}
}

type checkoutReq struct {
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerPhone   string `json:"customerPhone" binding:"required"`
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required,oneof=cod bank_transfer"`
	Notes           string `json:"notes"`
	CustomerEmail   string `json:"customerEmail"`
	NotifyCustomer  bool   `json:"notifyCustomer"`
}

type checkoutResp struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
}

// Checkout submits the cart identified by X-Cart-Token as an order.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	// Generous budget: one MySQL write plus up to two SMTP round trips.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	order, err := h.place.Execute(ctx, usecase.PlaceOrderInput{
		CartID:          cartToken(c),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		Notes:           req.Notes,
		CustomerEmail:   req.CustomerEmail,
		NotifyCustomer:  req.NotifyCustomer,
	})
	if err != nil {
		logging.From(c).Error("checkout failed", "err", err)
		switch {
		case errors.Is(err, usecase.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart"})
		case errors.Is(err, usecase.ErrDispatchFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "notification_failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout_failed"})
		}
		return
	}

	observ.OrderPlaced()
	c.JSON(http.StatusCreated, checkoutResp{
		OrderID:     order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
	})
}
