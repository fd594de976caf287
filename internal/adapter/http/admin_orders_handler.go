package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

type AdminOrdersHandler struct {
	list  *usecase.ListOrders
	query usecase.OrderRepo
}

func NewAdminOrdersHandler(list *usecase.ListOrders, query usecase.OrderRepo) *AdminOrdersHandler {
	return &AdminOrdersHandler{list: list, query: query}
}

type orderRowView struct {
	ID              string             `json:"id"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes,omitempty"`
	Items           []domain.OrderItem `json:"items"`
	TotalAmount     int64              `json:"totalAmount"`
	TotalVND        string             `json:"totalFormatted"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
}

func newOrderRowView(o domain.Order) orderRowView {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return orderRowView{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   string(o.PaymentMethod),
		Notes:           o.Notes,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		TotalVND:        domain.FormatVND(o.TotalAmount),
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}

// ListOrders serves the admin dashboard: one filtered page plus the global
// status distribution.
func (h *AdminOrdersHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	view, err := h.list.Execute(ctx, usecase.ListOrdersInput{
		Search: c.Query("search"),
		Status: c.DefaultQuery("status", "all"),
		Page:   page,
	})
	if err != nil {
		logging.From(c).Error("order listing failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query_failed"})
		return
	}

	rows := make([]orderRowView, 0, len(view.Rows))
	for _, o := range view.Rows {
		rows = append(rows, newOrderRowView(o))
	}

	counts := make(map[string]int64, len(view.StatusCounts))
	for st, n := range view.StatusCounts {
		counts[string(st)] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"totalCount":   view.TotalCount,
		"grandTotal":   view.GrandTotal,
		"statusCounts": counts,
	})
}

// GetOrder returns one order with its items.
func (h *AdminOrdersHandler) GetOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	o, err := h.query.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query_failed"})
		return
	}
	c.JSON(http.StatusOK, newOrderRowView(*o))
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
	// When From is set the update only applies if the order is still in
	// that status (guarded transition).
	From string `json:"from"`
}

// UpdateStatus advances an order on behalf of an administrator.
func (h *AdminOrdersHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	to := domain.Status(req.Status)
	if !domain.ValidStatus(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	id := c.Param("id")
	if req.From != "" {
		ok, err := h.query.UpdateStatusIf(ctx, id, domain.Status(req.From), to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "status_changed_concurrently"})
			return
		}
	} else {
		if err := h.query.UpdateStatus(ctx, id, to); err != nil {
			if errors.Is(err, usecase.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(to)})
}
