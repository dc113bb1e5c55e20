package product

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/catalog"
	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
)

// 🔵 GET /api/products?category&brand&min_price&max_price&specs&search
func (h *Handler) ListProducts(c *gin.Context) {
	q := repository.ProductQuery{
		Brand:  strings.TrimSpace(c.Query("brand")),
		Search: strings.TrimSpace(c.Query("search")),
	}

	if raw := c.Query("category"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}
		q.CategoryID = &id
	}

	var err error
	if q.MinPrice, err = priceBound(c, "min_price"); err != nil {
		handlers.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.MaxPrice, err = priceBound(c, "max_price"); err != nil {
		handlers.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	products, err := h.catalog.ListProducts(ctx, q)
	if err != nil {
		handlers.ServerError(c, "Listing products", err)
		return
	}
	products = catalog.Apply(products, catalog.ParseConstraints(c.Query("specs")))

	c.JSON(http.StatusOK, handlers.Products(ctx, h.images, products))
}

// 🔵 GET /api/products/:slug
func (h *Handler) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.catalog.GetProductBySlug(ctx, c.Param("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		handlers.ServerError(c, "Loading product", err)
		return
	}
	c.JSON(http.StatusOK, handlers.Product(ctx, h.images, *p))
}

func priceBound(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}
