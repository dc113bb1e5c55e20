package product

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/repository"
)

// 🟢 PUT /api/manager/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	category, err := h.catalog.GetCategory(ctx, id)
	if err != nil {
		h.categoryWriteError(c, err)
		return
	}
	if !h.applyCategory(c, category, input) {
		return
	}
	if err := h.catalog.UpdateCategory(ctx, category); err != nil {
		h.categoryWriteError(c, err)
		return
	}
	h.invalidate(ctx)

	c.JSON(http.StatusOK, category)
}

// 🔴 DELETE /api/manager/categories/:id
//
// Child categories are removed too; their products are kept without a
// category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	ctx := c.Request.Context()
	if err := h.catalog.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			handlers.Error(c, http.StatusNotFound, "Category not found")
			return
		}
		handlers.ServerError(c, "Deleting category", err)
		return
	}
	h.invalidate(ctx)

	log.Printf("🗑️ Category %d deleted", id)
	c.Status(http.StatusNoContent)
}
