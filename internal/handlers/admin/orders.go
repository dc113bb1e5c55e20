package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/models"
)

// 🔵 GET /api/manager/orders
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		handlers.ServerError(c, "Listing orders", err)
		return
	}
	c.JSON(http.StatusOK, handlers.Orders(orders))
}

// 🟢 POST /api/manager/orders/mark-paid {"ids": [...]}
//
// Each newly paid order gets a payment notice by mail when SMTP is set up.
func (h *Handler) MarkPaid(c *gin.Context) {
	var input struct {
		IDs []uint `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	paid, err := h.orders.MarkPaid(c.Request.Context(), input.IDs)
	if err != nil {
		handlers.ServerError(c, "Marking orders paid", err)
		return
	}
	log.Printf("💰 %d order(s) marked as paid", len(paid))

	if h.mailer != nil && len(paid) > 0 {
		go h.notifyPaid(context.WithoutCancel(c.Request.Context()), paid)
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(paid)})
}

func (h *Handler) notifyPaid(ctx context.Context, orders []models.Order) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	for i := range orders {
		if err := h.mailer.SendPaymentReceived(ctx, &orders[i]); err != nil {
			log.Printf("⚠️ Payment notice for order %d failed: %v", orders[i].ID, err)
		}
	}
}
