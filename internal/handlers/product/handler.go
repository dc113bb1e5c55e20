package product

import (
	"context"
	"log"
	"strconv"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/services"
)

// Handler serves the public catalog and its manager maintenance endpoints.
type Handler struct {
	catalog *repository.CatalogRepository
	cache   *cache.Store
	images  *services.ImageStore
	ledger  *services.Ledger
}

func NewHandler(catalog *repository.CatalogRepository, store *cache.Store, images *services.ImageStore, ledger *services.Ledger) *Handler {
	return &Handler{catalog: catalog, cache: store, images: images, ledger: ledger}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// invalidate drops cached catalog responses after a write.
func (h *Handler) invalidate(ctx context.Context) {
	if err := h.cache.InvalidateCatalog(ctx); err != nil {
		log.Printf("⚠️ Catalog cache invalidation failed: %v", err)
	}
}
