package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CategoriesKey = "catalog:categories"
	filtersPrefix = "filters:category:"
	CatalogTTL    = 10 * time.Minute
)

// FiltersKey is the cache key of the facets of one category.
func FiltersKey(categoryID uint) string {
	return fmt.Sprintf("%s%d", filtersPrefix, categoryID)
}

// InvalidateCatalog drops every cached catalog response. It is called after
// any manager write to categories or products.
func (s *Store) InvalidateCatalog(ctx context.Context) error {
	if err := s.Delete(ctx, CategoriesKey); err != nil {
		return err
	}
	return s.DeletePrefix(ctx, filtersPrefix)
}
