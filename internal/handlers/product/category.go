package product

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/middleware"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/utils"
)

type categoryInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Slug     string `json:"slug" binding:"max=100"`
	ParentID *uint  `json:"parent_id"`
}

// 🔵 GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()

	var categories []models.Category
	hit, err := h.cache.GetJSON(ctx, cache.CategoriesKey, &categories)
	if err != nil {
		log.Printf("⚠️ Categories cache read failed: %v", err)
	}
	if hit {
		c.JSON(http.StatusOK, categories)
		return
	}

	categories, err = h.catalog.ListCategories(ctx)
	if err != nil {
		handlers.ServerError(c, "Listing categories", err)
		return
	}
	if err := h.cache.SetJSON(ctx, cache.CategoriesKey, categories, cache.CatalogTTL); err != nil {
		log.Printf("⚠️ Categories cache write failed: %v", err)
	}
	c.JSON(http.StatusOK, categories)
}

// 🟢 POST /api/manager/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	category := &models.Category{}
	if !h.applyCategory(c, category, input) {
		return
	}

	if err := h.catalog.CreateCategory(c.Request.Context(), category); err != nil {
		h.categoryWriteError(c, err)
		return
	}
	h.invalidate(c.Request.Context())
	middleware.SetAuditResource(c, category.ID)

	log.Printf("✅ Category %q created (id %d)", category.Name, category.ID)
	c.JSON(http.StatusCreated, category)
}

// applyCategory validates input against the store and copies it into
// category. It writes the error response and returns false on failure.
func (h *Handler) applyCategory(c *gin.Context, category *models.Category, input categoryInput) bool {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if name == "" || slug == "" {
		handlers.Error(c, http.StatusBadRequest, "name: a category needs a name that yields a slug")
		return false
	}

	if input.ParentID != nil {
		if category.ID != 0 && *input.ParentID == category.ID {
			handlers.Error(c, http.StatusBadRequest, "parent_id: a category cannot be its own parent")
			return false
		}
		exists, err := h.catalog.CategoryExists(c.Request.Context(), *input.ParentID)
		if err != nil {
			handlers.ServerError(c, "Checking parent category", err)
			return false
		}
		if !exists {
			handlers.Error(c, http.StatusBadRequest, "parent_id: unknown category")
			return false
		}
	}

	category.Name = name
	category.Slug = slug
	category.ParentID = input.ParentID
	return true
}

func (h *Handler) categoryWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSlugTaken):
		handlers.Error(c, http.StatusBadRequest, "slug: a category with this slug already exists")
	case errors.Is(err, repository.ErrNotFound):
		handlers.Error(c, http.StatusNotFound, "Category not found")
	default:
		handlers.ServerError(c, "Saving category", err)
	}
}
