package product

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/middleware"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/utils"
)

type productInput struct {
	Name          string               `json:"name" binding:"required,max=200"`
	Slug          string               `json:"slug" binding:"max=200"`
	Description   string               `json:"description"`
	Price         *int64               `json:"price" binding:"required,gte=0"`
	Stock         *int                 `json:"stock" binding:"omitempty,gte=0"`
	IsAvailable   *bool                `json:"is_available"`
	Brand         string               `json:"brand" binding:"max=50"`
	Category      *uint                `json:"category"`
	Specification models.Specification `json:"specification"`
}

// 🟢 POST /api/manager/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	p := &models.Product{Stock: 1, IsAvailable: true}
	if !h.applyProduct(c, p, input) {
		return
	}

	ctx := c.Request.Context()
	if err := h.catalog.CreateProduct(ctx, p); err != nil {
		h.productWriteError(c, err)
		return
	}
	h.invalidate(ctx)
	middleware.SetAuditResource(c, p.ID)

	log.Printf("✅ Product %q created (id %d, stock %d)", p.Name, p.ID, p.Stock)
	c.JSON(http.StatusCreated, handlers.Product(ctx, h.images, *p))
}

// 🟢 PUT /api/manager/products/:id
//
// A changed stock is written to the ledger as an adjustment.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	p, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		h.productWriteError(c, err)
		return
	}
	oldStock := p.Stock
	if !h.applyProduct(c, p, input) {
		return
	}
	if err := h.catalog.UpdateProduct(ctx, p); err != nil {
		h.productWriteError(c, err)
		return
	}
	h.invalidate(ctx)

	if p.Stock != oldStock {
		h.recordMovement(c, stockMovement(c, p.ID, models.MovementAdjustment, p.Stock-oldStock, p.Stock, "product update"))
	}
	c.JSON(http.StatusOK, handlers.Product(ctx, h.images, *p))
}

// 🔴 DELETE /api/manager/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}

	ctx := c.Request.Context()
	p, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		h.productWriteError(c, err)
		return
	}
	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		h.productWriteError(c, err)
		return
	}
	h.invalidate(ctx)

	if err := h.images.Remove(ctx, p.Image); err != nil {
		log.Printf("⚠️ Image %s of deleted product %d left behind: %v", p.Image, id, err)
	}
	log.Printf("🗑️ Product %d deleted", id)
	c.Status(http.StatusNoContent)
}

// applyProduct validates input and copies it into p. Stock and availability
// keep their current value when omitted.
func (h *Handler) applyProduct(c *gin.Context, p *models.Product, input productInput) bool {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if name == "" || slug == "" {
		handlers.Error(c, http.StatusBadRequest, "name: a product needs a name that yields a slug")
		return false
	}

	for _, e := range input.Specification {
		if e.Value.Kind == models.SpecOther {
			handlers.Error(c, http.StatusBadRequest,
				fmt.Sprintf("specification: %q must be a string, number, boolean or null", e.Key))
			return false
		}
	}

	if input.Category != nil {
		exists, err := h.catalog.CategoryExists(c.Request.Context(), *input.Category)
		if err != nil {
			handlers.ServerError(c, "Checking product category", err)
			return false
		}
		if !exists {
			handlers.Error(c, http.StatusBadRequest, "category: unknown category")
			return false
		}
	}

	p.Name = name
	p.Slug = slug
	p.Description = input.Description
	p.Price = *input.Price
	p.Brand = strings.TrimSpace(input.Brand)
	p.CategoryID = input.Category
	p.Specification = input.Specification
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.IsAvailable != nil {
		p.IsAvailable = *input.IsAvailable
	}
	return true
}

func (h *Handler) productWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSlugTaken):
		handlers.Error(c, http.StatusBadRequest, "slug: a product with this slug already exists")
	case errors.Is(err, repository.ErrNotFound):
		handlers.Error(c, http.StatusNotFound, "Product not found")
	default:
		handlers.ServerError(c, "Saving product", err)
	}
}

func stockMovement(c *gin.Context, productID uint, kind string, quantity, newStock int, reason string) models.StockMovement {
	m := models.StockMovement{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		Type:      kind,
		Quantity:  quantity,
		NewStock:  newStock,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if uid, ok := middleware.UserID(c); ok {
		m.UserID = fmt.Sprint(uid)
	}
	return m
}

func (h *Handler) recordMovement(c *gin.Context, m models.StockMovement) {
	if err := h.ledger.RecordMovements(c.Request.Context(), []models.StockMovement{m}); err != nil {
		log.Printf("⚠️ Stock ledger write for product %d failed: %v", m.ProductID, err)
	}
}
