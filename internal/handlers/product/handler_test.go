package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	r       *gin.Engine
	ctx     context.Context
	catalog *repository.CatalogRepository
	mr      *miniredis.Miniredis
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	catalog := repository.NewCatalogRepository(testutil.NewTestDB(t))
	h := NewHandler(catalog, cache.New(rdb), nil, nil)

	r := gin.New()
	r.GET("/categories", h.ListCategories)
	r.GET("/filters", h.Filters)
	r.POST("/categories", h.CreateCategory)
	r.PUT("/categories/:id", h.UpdateCategory)
	r.POST("/products", h.CreateProduct)

	return &harness{r: r, ctx: context.Background(), catalog: catalog, mr: mr}
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func TestCategoriesAreCachedAndInvalidated(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.catalog.CreateCategory(h.ctx, &models.Category{Name: "CPU", Slug: "cpu"}))

	w := h.do("GET", "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cpu"`)
	assert.True(t, h.mr.Exists(cache.CategoriesKey))

	// Served from the cache: a row written behind the handler's back is not
	// visible yet.
	require.NoError(t, h.catalog.CreateCategory(h.ctx, &models.Category{Name: "GPU", Slug: "gpu"}))
	w = h.do("GET", "/categories", "")
	assert.NotContains(t, w.Body.String(), `"gpu"`)

	w = h.do("POST", "/categories", `{"name": "Grafické karty"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"graficke-karty"`)
	assert.False(t, h.mr.Exists(cache.CategoriesKey))

	w = h.do("GET", "/categories", "")
	assert.Contains(t, w.Body.String(), `"gpu"`)
	assert.Contains(t, w.Body.String(), `"graficke-karty"`)
}

func TestCategoryValidation(t *testing.T) {
	h := newHarness(t)
	cpu := &models.Category{Name: "CPU", Slug: "cpu"}
	require.NoError(t, h.catalog.CreateCategory(h.ctx, cpu))
	id := strconv.FormatUint(uint64(cpu.ID), 10)

	assert.Equal(t, http.StatusBadRequest, h.do("POST", "/categories", `{"name": "Cpu"}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do("POST", "/categories", `{"name": "Intel", "parent_id": 999}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do("PUT", "/categories/"+id, `{"name": "CPU", "parent_id": `+id+`}`).Code)
	assert.Equal(t, http.StatusNotFound, h.do("PUT", "/categories/999", `{"name": "X"}`).Code)

	w := h.do("POST", "/categories", `{"name": "Intel", "parent_id": `+id+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"parent_id":`+id)
}

func TestFiltersCachePerCategory(t *testing.T) {
	h := newHarness(t)
	cpu := &models.Category{Name: "CPU", Slug: "cpu"}
	require.NoError(t, h.catalog.CreateCategory(h.ctx, cpu))
	id := strconv.FormatUint(uint64(cpu.ID), 10)

	w := h.do("GET", "/filters?category="+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.True(t, h.mr.Exists(cache.FiltersKey(cpu.ID)))

	w = h.do("POST", "/products", `{"name": "Ryzen 5", "price": 4990, "brand": "AMD", "category": `+id+`, "specification": {"cores": 6}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.False(t, h.mr.Exists(cache.FiltersKey(cpu.ID)))

	w = h.do("GET", "/filters?category="+id, "")
	assert.JSONEq(t, `[
		{"id":"brand","label":"Brand","options":["AMD"]},
		{"id":"cores","label":"Cores","options":["6"]}
	]`, w.Body.String())

	// Unknown categories are not cached.
	w = h.do("GET", "/filters?category=999", "")
	assert.JSONEq(t, `{"filters":[]}`, w.Body.String())
	assert.False(t, h.mr.Exists(cache.FiltersKey(999)))
}
