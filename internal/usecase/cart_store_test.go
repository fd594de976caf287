package usecase

import (
	"context"
	"errors"
	"testing"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory CartStorage fake.
type memStorage struct {
	blobs   map[string][]byte
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte)}
}

func (m *memStorage) Load(_ context.Context, cartID string) ([]byte, error) {
	return m.blobs[cartID], nil
}

func (m *memStorage) Save(_ context.Context, cartID string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.blobs[cartID] = data
	return nil
}

func testItem(variantID string, price int64, qty, stock int) domain.CartItem {
	return domain.CartItem{
		ProductID:   "p1",
		VariantID:   variantID,
		ProductName: "Tivi LG 43 inch",
		Price:       price,
		Quantity:    qty,
		Stock:       stock,
	}
}

func TestReadMissingCartIsEmpty(t *testing.T) {
	store := NewCartStore(newMemStorage(), NewChangeBus())
	cart := store.Read(context.Background(), "c1")
	assert.Empty(t, cart.Items)
}

func TestReadCorruptBlobRecoversToEmpty(t *testing.T) {
	storage := newMemStorage()
	storage.blobs["c1"] = []byte("{not json")

	store := NewCartStore(storage, NewChangeBus())
	cart := store.Read(context.Background(), "c1")
	assert.Empty(t, cart.Items)
}

func TestAddPersistsAcrossReads(t *testing.T) {
	store := NewCartStore(newMemStorage(), NewChangeBus())
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", testItem("A", 100, 2, 5))
	require.NoError(t, err)
	_, err = store.Add(ctx, "c1", testItem("A", 100, 2, 5))
	require.NoError(t, err)

	cart := store.Read(ctx, "c1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, int64(400), cart.Total())
	assert.Equal(t, 4, cart.ItemCount())
}

func TestSetQuantityClampsToStock(t *testing.T) {
	store := NewCartStore(newMemStorage(), NewChangeBus())
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", testItem("A", 100, 2, 5))
	require.NoError(t, err)

	cart, err := store.SetQuantity(ctx, "c1", "A", 10)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestEveryMutationBroadcastsExactlyOnce(t *testing.T) {
	bus := NewChangeBus()
	store := NewCartStore(newMemStorage(), bus)
	ctx := context.Background()

	var signals int
	unsubscribe := bus.Subscribe(func() { signals++ })
	defer unsubscribe()

	_, err := store.Add(ctx, "c1", testItem("A", 100, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, signals)

	// no-op quantity change on a missing variant still signals
	_, err = store.SetQuantity(ctx, "c1", "missing", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, signals)

	_, err = store.Remove(ctx, "c1", "A")
	require.NoError(t, err)
	assert.Equal(t, 3, signals)

	require.NoError(t, store.Clear(ctx, "c1"))
	assert.Equal(t, 4, signals)
}

func TestFailedSaveDoesNotBroadcast(t *testing.T) {
	storage := newMemStorage()
	storage.saveErr = errors.New("redis down")
	bus := NewChangeBus()
	store := NewCartStore(storage, bus)

	var signals int
	defer bus.Subscribe(func() { signals++ })()

	_, err := store.Add(context.Background(), "c1", testItem("A", 100, 1, 5))
	require.Error(t, err)
	assert.Zero(t, signals)
}

func TestCartsAreIsolatedByID(t *testing.T) {
	store := NewCartStore(newMemStorage(), NewChangeBus())
	ctx := context.Background()

	_, err := store.Add(ctx, "c1", testItem("A", 100, 1, 5))
	require.NoError(t, err)
	_, err = store.Add(ctx, "c2", testItem("B", 200, 2, 5))
	require.NoError(t, err)

	assert.Len(t, store.Read(ctx, "c1").Items, 1)
	assert.Equal(t, "A", store.Read(ctx, "c1").Items[0].VariantID)
	assert.Equal(t, "B", store.Read(ctx, "c2").Items[0].VariantID)
}
