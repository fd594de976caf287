package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatusCache struct {
	entries map[string]string
}

func (s *stubStatusCache) SetStatus(_ context.Context, orderID, status string) error {
	s.entries[orderID] = status
	return nil
}

func (s *stubStatusCache) GetStatus(_ context.Context, orderID string) (string, bool, error) {
	st, ok := s.entries[orderID]
	return st, ok, nil
}

func newStatusTestRouter(cache *stubStatusCache, repo *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderStatusHandler(cache, repo)

	r := gin.New()
	r.GET("/v1/orders/:id/status", h.GetStatus)
	return r
}

func TestOrderStatusServedFromCache(t *testing.T) {
	cache := &stubStatusCache{entries: map[string]string{"ord-1": "shipped"}}
	repo := &stubOrderRepo{statuses: map[string]domain.Status{}}
	r := newStatusTestRouter(cache, repo)

	w := doJSON(t, r, http.MethodGet, "/v1/orders/ord-1/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "shipped", resp["status"])
	assert.Zero(t, repo.getCalls)
}

func TestOrderStatusCacheMissFallsBackAndWarms(t *testing.T) {
	cache := &stubStatusCache{entries: map[string]string{}}
	repo := &stubOrderRepo{order: sampleOrder(), statuses: map[string]domain.Status{}}
	r := newStatusTestRouter(cache, repo)

	w := doJSON(t, r, http.MethodGet, "/v1/orders/ord-1/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, "pending", cache.entries["ord-1"])

	// second poll hits the warmed cache
	w = doJSON(t, r, http.MethodGet, "/v1/orders/ord-1/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.getCalls)
}

func TestOrderStatusUnknownOrder(t *testing.T) {
	cache := &stubStatusCache{entries: map[string]string{}}
	repo := &stubOrderRepo{statuses: map[string]domain.Status{}}
	r := newStatusTestRouter(cache, repo)

	w := doJSON(t, r, http.MethodGet, "/v1/orders/missing/status", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
