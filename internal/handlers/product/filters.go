package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/catalog"
	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/repository"
)

var noFilters = gin.H{"filters": []catalog.Facet{}}

// 🔵 GET /api/filters?category=<id>
//
// Answers the facet list of the category scope, or {"filters": []} when the
// category does not exist.
func (h *Handler) Filters(c *gin.Context) {
	raw := c.Query("category")
	if raw == "" {
		handlers.Error(c, http.StatusBadRequest, "category query parameter is required")
		return
	}
	id, ok := parseID(raw)
	if !ok {
		c.JSON(http.StatusOK, noFilters)
		return
	}

	ctx := c.Request.Context()
	var facets []catalog.Facet
	hit, err := h.cache.GetJSON(ctx, cache.FiltersKey(id), &facets)
	if err != nil {
		log.Printf("⚠️ Filters cache read failed: %v", err)
	}
	if hit {
		c.JSON(http.StatusOK, facets)
		return
	}

	exists, err := h.catalog.CategoryExists(ctx, id)
	if err != nil {
		handlers.ServerError(c, "Checking category", err)
		return
	}
	if !exists {
		c.JSON(http.StatusOK, noFilters)
		return
	}

	products, err := h.catalog.ListProducts(ctx, repository.ProductQuery{CategoryID: &id})
	if err != nil {
		handlers.ServerError(c, "Listing products for filters", err)
		return
	}
	facets = catalog.BuildFacets(products)

	if err := h.cache.SetJSON(ctx, cache.FiltersKey(id), facets, cache.CatalogTTL); err != nil {
		log.Printf("⚠️ Filters cache write failed: %v", err)
	}
	c.JSON(http.StatusOK, facets)
}
