package product

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/services"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 200
)

type stockInput struct {
	Type     string `json:"type" binding:"required,oneof=restock adjustment"`
	Quantity *int   `json:"quantity" binding:"required,gte=0"`
	Reason   string `json:"reason" binding:"max=255"`
}

// 🟢 POST /api/manager/products/:id/stock
//
// A restock adds quantity to the stock, an adjustment sets it.
func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}

	var input stockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}
	if input.Type == models.MovementRestock && *input.Quantity == 0 {
		handlers.Error(c, http.StatusBadRequest, "quantity: a restock must add at least 1 unit")
		return
	}

	ctx := c.Request.Context()
	oldStock, newStock, err := h.catalog.AdjustStock(ctx, id, input.Type, *input.Quantity)
	if err != nil {
		h.productWriteError(c, err)
		return
	}
	h.invalidate(ctx)

	delta := *input.Quantity
	if input.Type == models.MovementAdjustment {
		delta = newStock - oldStock
	}
	movement := stockMovement(c, id, input.Type, delta, newStock, input.Reason)
	h.recordMovement(c, movement)

	log.Printf("📦 Stock of product %d: %d -> %d (%s)", id, oldStock, newStock, input.Type)
	c.JSON(http.StatusOK, gin.H{
		"product_id": id,
		"stock":      newStock,
		"movement":   movement,
	})
}

// 🔵 GET /api/manager/products/:id/stock-movements?limit=
func (h *Handler) StockMovements(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}

	limit := defaultMovementLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handlers.Error(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxMovementLimit)
	}

	movements, err := h.ledger.Movements(c.Request.Context(), id, limit)
	if errors.Is(err, services.ErrLedgerDisabled) {
		handlers.Error(c, http.StatusServiceUnavailable, "Stock ledger is not configured")
		return
	}
	if err != nil {
		handlers.ServerError(c, "Reading stock movements", err)
		return
	}
	c.JSON(http.StatusOK, movements)
}
