package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	order    *domain.Order
	statuses map[string]domain.Status

	guardOK  bool
	failPage bool
	getCalls int
}

func (s *stubOrderRepo) Create(context.Context, *domain.Order) error { return nil }

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	s.getCalls++
	if s.order != nil && s.order.ID == id {
		return s.order, nil
	}
	return nil, usecase.ErrOrderNotFound
}

func (s *stubOrderRepo) FindPage(_ context.Context, _ usecase.OrderFilter, _, _ int) ([]domain.Order, int64, error) {
	if s.failPage {
		return nil, 0, errors.New("mysql gone away")
	}
	if s.order == nil {
		return nil, 0, nil
	}
	return []domain.Order{*s.order}, 1, nil
}

func (s *stubOrderRepo) CountByStatus(context.Context, domain.Status) (int64, error) { return 1, nil }
func (s *stubOrderRepo) CountAll(context.Context) (int64, error)                     { return 5, nil }

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, st domain.Status) error {
	if s.order == nil || s.order.ID != id {
		return usecase.ErrOrderNotFound
	}
	s.statuses[id] = st
	return nil
}

func (s *stubOrderRepo) UpdateStatusIf(_ context.Context, id string, _, to domain.Status) (bool, error) {
	if !s.guardOK {
		return false, nil
	}
	s.statuses[id] = to
	return true, nil
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:              "ord-1",
		CustomerName:    "Nguyễn Văn A",
		CustomerPhone:   "0901234567",
		ShippingAddress: "12 Lý Thường Kiệt, Hà Nội",
		PaymentMethod:   domain.PaymentCOD,
		Items:           []domain.OrderItem{{ProductName: "Quạt điện Senko", Quantity: 2, Price: 350000}},
		TotalAmount:     700000,
		Status:          domain.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
}

func newAdminTestRouter(repo *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminOrdersHandler(usecase.NewListOrders(repo, 10), repo)

	r := gin.New()
	r.GET("/v1/admin/orders", h.ListOrders)
	r.GET("/v1/admin/orders/:id", h.GetOrder)
	r.PATCH("/v1/admin/orders/:id/status", h.UpdateStatus)
	return r
}

func TestAdminListOrders(t *testing.T) {
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/v1/admin/orders?page=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows         []orderRowView   `json:"rows"`
		TotalCount   int64            `json:"totalCount"`
		GrandTotal   int64            `json:"grandTotal"`
		StatusCounts map[string]int64 `json:"statusCounts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "700.000₫", resp.Rows[0].TotalVND)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, int64(5), resp.GrandTotal)
	assert.Len(t, resp.StatusCounts, 5)
}

func TestAdminListOrdersFailureHidesDetail(t *testing.T) {
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}, failPage: true}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/v1/admin/orders", "", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"query_failed"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "mysql")
}

func TestAdminGetOrder(t *testing.T) {
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/v1/admin/orders/ord-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view orderRowView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "ord-1", view.ID)
	assert.Equal(t, "pending", view.Status)

	w = doJSON(t, r, http.MethodGet, "/v1/admin/orders/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminUpdateStatus(t *testing.T) {
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/v1/admin/orders/ord-1/status", "", gin.H{"status": "processing"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusProcessing, repo.statuses["ord-1"])
}

func TestAdminUpdateStatusRejectsUnknown(t *testing.T) {
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/v1/admin/orders/ord-1/status", "", gin.H{"status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUpdateStatusNotFound(t *testing.T) {
	repo := &stubOrderRepo{statuses: map[string]domain.Status{}}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/v1/admin/orders/missing/status", "", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminGuardedTransitionConflict(t *testing.T) {
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}}
	r := newAdminTestRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/v1/admin/orders/ord-1/status", "", gin.H{"status": "shipped", "from": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)

	repo.guardOK = true
	w = doJSON(t, r, http.MethodPatch, "/v1/admin/orders/ord-1/status", "", gin.H{"status": "shipped", "from": "processing"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusShipped, repo.statuses["ord-1"])
}
