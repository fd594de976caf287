package usecase

import (
	"context"
	"encoding/json"

	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
)

// CartStore owns the persisted cart blob for each client. All mutation goes
// through write, which persists the whole cart and then fires exactly one
// change-bus broadcast, whether or not the logical state changed.
type CartStore struct {
	storage CartStorage
	bus     *ChangeBus
}

func NewCartStore(storage CartStorage, bus *ChangeBus) *CartStore {
	return &CartStore{storage: storage, bus: bus}
}

// Read returns the stored cart. An absent or unparsable blob yields an empty
// cart; corruption is swallowed, never surfaced.
func (s *CartStore) Read(ctx context.Context, cartID string) domain.Cart {
	data, err := s.storage.Load(ctx, cartID)
	if err != nil || len(data) == 0 {
		return domain.Cart{}
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		logging.FromCtx(ctx).Warn("cart blob unparsable, recovering to empty cart", "cart_id", cartID, "err", err)
		return domain.Cart{}
	}
	return cart
}

func (s *CartStore) write(ctx context.Context, cartID string, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, cartID, data); err != nil {
		return err
	}
	s.bus.Broadcast()
	return nil
}

// Add merges item into the cart (quantity clamped to item.Stock) and persists.
func (s *CartStore) Add(ctx context.Context, cartID string, item domain.CartItem) (domain.Cart, error) {
	cart := s.Read(ctx, cartID)
	cart.Add(item)
	return cart, s.write(ctx, cartID, cart)
}

// SetQuantity applies a clamped quantity to an existing variant. A missing
// variant is a no-op, but the cart is still written so listeners stay
// consistent.
func (s *CartStore) SetQuantity(ctx context.Context, cartID, variantID string, quantity int) (domain.Cart, error) {
	cart := s.Read(ctx, cartID)
	cart.SetQuantity(variantID, quantity)
	return cart, s.write(ctx, cartID, cart)
}

// Remove filters the variant out and persists.
func (s *CartStore) Remove(ctx context.Context, cartID, variantID string) (domain.Cart, error) {
	cart := s.Read(ctx, cartID)
	cart.Remove(variantID)
	return cart, s.write(ctx, cartID, cart)
}

// Clear writes an empty cart.
func (s *CartStore) Clear(ctx context.Context, cartID string) error {
	return s.write(ctx, cartID, domain.Cart{})
}
