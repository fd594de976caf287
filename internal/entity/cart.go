package domain

// Attribute is one display attribute of a variant (e.g. màu sắc, kích thước).
// Order matters for rendering, so this is a slice and not a map.
type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CartItem is one line in a cart. VariantID is the unique key within a cart.
// Price is the unit price in VND, frozen at the moment the item entered the
// cart; it is never refreshed from the live catalog.
type CartItem struct {
	ProductID   string      `json:"productId"`
	VariantID   string      `json:"variantId"`
	ProductName string      `json:"productName"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
	Price       int64       `json:"price"`
	Quantity    int         `json:"quantity"`
	Stock       int         `json:"stock"`
}

// Cart is an ordered collection of items, at most one per VariantID.
type Cart struct {
	Items []CartItem `json:"items"`
}

// ClampQuantity bounds q to [1, stock].
func ClampQuantity(q, stock int) int {
	if q < 1 {
		return 1
	}
	if q > stock {
		return stock
	}
	return q
}

func (c *Cart) index(variantID string) int {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

// Add merges item into the cart. Re-adding an existing variant increases its
// quantity, clamped to the incoming stock ceiling; a new variant is appended.
func (c *Cart) Add(item CartItem) {
	if i := c.index(item.VariantID); i >= 0 {
		c.Items[i].Quantity = ClampQuantity(c.Items[i].Quantity+item.Quantity, item.Stock)
		c.Items[i].Stock = item.Stock
		return
	}
	item.Quantity = ClampQuantity(item.Quantity, item.Stock)
	c.Items = append(c.Items, item)
}

// SetQuantity applies a clamped quantity to an existing variant.
// Unknown variants are ignored.
func (c *Cart) SetQuantity(variantID string, quantity int) {
	if i := c.index(variantID); i >= 0 {
		c.Items[i].Quantity = ClampQuantity(quantity, c.Items[i].Stock)
	}
}

// Remove drops the variant from the cart if present.
func (c *Cart) Remove(variantID string) {
	if i := c.index(variantID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Total is the cart grand total in VND.
func (c Cart) Total() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.Price * int64(it.Quantity)
	}
	return sum
}

// ItemCount is the total number of units across all lines.
func (c Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
