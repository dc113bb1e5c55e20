package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/repository"
)

// 🔵 GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cart, err := h.carts.GetOrCreate(ctx, uid)
	if err != nil {
		handlers.ServerError(c, "Loading cart", err)
		return
	}
	c.JSON(http.StatusOK, handlers.Cart(ctx, h.images, cart))
}

// 🟢 POST /api/cart {"product_id", "quantity"}
//
// Quantity defaults to 1 and is added to the quantity already in the cart.
func (h *Handler) AddToCart(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 {
		handlers.Error(c, http.StatusBadRequest, "quantity: must be at least 1")
		return
	}

	ctx := c.Request.Context()
	cart, err := h.carts.AddItem(ctx, uid, input.ProductID, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		handlers.ServerError(c, "Adding to cart", err)
		return
	}
	c.JSON(http.StatusOK, handlers.Cart(ctx, h.images, cart))
}

// 🔴 DELETE /api/cart {"product_id"} or DELETE /api/cart?product_id=
//
// Removing a product that is not in the cart is a no-op.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var productID uint
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.Error(c, http.StatusBadRequest, "product_id: must be an integer")
			return
		}
		productID = uint(id)
	} else {
		var input struct {
			ProductID uint `json:"product_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			handlers.BindError(c, err)
			return
		}
		productID = input.ProductID
	}

	if _, err := h.carts.RemoveItem(c.Request.Context(), uid, productID); err != nil {
		handlers.ServerError(c, "Removing from cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
