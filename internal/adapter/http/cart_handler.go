package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domain "github.com/quocluongg/telectric-web-sub001/internal/entity"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
)

// CartTokenHeader identifies the client's persistent cart. A token is minted
// on first contact and echoed on every response.
const CartTokenHeader = "X-Cart-Token"

type CartHandler struct {
	store *usecase.CartStore
}

func NewCartHandler(store *usecase.CartStore) *CartHandler {
	return &CartHandler{store: store}
}

func cartToken(c *gin.Context) string {
	token := c.GetHeader(CartTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	c.Header(CartTokenHeader, token)
	return token
}

type cartView struct {
	Items     []domain.CartItem `json:"items"`
	Total     int64             `json:"total"`
	TotalVND  string            `json:"totalFormatted"`
	ItemCount int               `json:"itemCount"`
}

func newCartView(cart domain.Cart) cartView {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartView{
		Items:     items,
		Total:     cart.Total(),
		TotalVND:  domain.FormatVND(cart.Total()),
		ItemCount: cart.ItemCount(),
	}
}

type addItemReq struct {
	ProductID   string             `json:"productId" binding:"required"`
	VariantID   string             `json:"variantId" binding:"required"`
	ProductName string             `json:"productName" binding:"required"`
	Thumbnail   string             `json:"thumbnail"`
	Attributes  []domain.Attribute `json:"attributes"`
	Price       int64              `json:"price" binding:"required,gt=0"`
	Quantity    int                `json:"quantity" binding:"required,min=1"`
	Stock       int                `json:"stock" binding:"required,min=1"`
}

type setQuantityReq struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the stored cart with derived totals.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart := h.store.Read(c.Request.Context(), cartToken(c))
	c.JSON(http.StatusOK, newCartView(cart))
}

// AddItem merges a variant into the cart. Quantities are clamped to the
// stock ceiling; the returned cart lets clients observe the clamp.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	cart, err := h.store.Add(c.Request.Context(), cartToken(c), domain.CartItem{
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		ProductName: req.ProductName,
		Thumbnail:   req.Thumbnail,
		Attributes:  req.Attributes,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Stock:       req.Stock,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed"})
		return
	}
	c.JSON(http.StatusOK, newCartView(cart))
}

// SetQuantity applies a clamped quantity to one variant.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	cart, err := h.store.SetQuantity(c.Request.Context(), cartToken(c), c.Param("variantId"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed"})
		return
	}
	c.JSON(http.StatusOK, newCartView(cart))
}

// RemoveItem drops one variant from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.store.Remove(c.Request.Context(), cartToken(c), c.Param("variantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed"})
		return
	}
	c.JSON(http.StatusOK, newCartView(cart))
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context(), cartToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed"})
		return
	}
	c.JSON(http.StatusOK, newCartView(domain.Cart{}))
}
