package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"storefront/internal/backend"
	"storefront/internal/service"
	"storefront/internal/view"

	"github.com/gin-gonic/gin"
)

// AddToCartBody is the add-to-cart request payload.
type AddToCartBody struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Note      string `json:"note"`
}

func (h *Handler) getCart(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		h.respondError(c, service.ErrUnauthenticated)
		return
	}

	snap, err := h.registry.For(sess).Cart.Fetch(c.Request.Context())
	if errors.Is(err, backend.ErrUnauthorized) {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.CartPage(snap))
}

func (h *Handler) addToCart(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		h.respondError(c, service.ErrUnauthenticated)
		return
	}

	var body AddToCartBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	product, err := h.catalog.Product(ctx, body.ProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	snap, err := h.registry.For(sess).Cart.Add(ctx, service.AddToCartRequest{
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
		Note:      body.Note,
		Stock:     product.Stock,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produk berhasil ditambahkan ke keranjang",
		"cart":    view.CartPage(snap),
	})
}

// cartStream pushes the cart counter over server-sent events until the
// client goes away.
func (h *Handler) cartStream(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		h.respondError(c, service.ErrUnauthenticated)
		return
	}

	ctx := c.Request.Context()
	cart := h.registry.For(sess).Cart
	if !cart.Snapshot().Loaded {
		_, _ = cart.Fetch(ctx)
	}

	updates, cancel := cart.Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("cart", view.CartCounter(snap))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *Handler) getOrders(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		h.respondError(c, service.ErrUnauthenticated)
		return
	}

	snap, err := h.registry.For(sess).Orders.Fetch(c.Request.Context())
	if errors.Is(err, backend.ErrUnauthorized) {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.OrderHistory(snap))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		h.respondError(c, service.ErrUnauthenticated)
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	snap, err := h.registry.For(sess).Orders.Cancel(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pesanan berhasil dibatalkan",
		"orders":  view.OrderHistory(snap),
	})
}
