package product

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/services"
)

// 🟢 POST /api/manager/products/:id/image (multipart field "image")
//
// The new image replaces the previous one, which is removed from storage.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.images == nil {
		handlers.Error(c, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		handlers.Error(c, http.StatusNotFound, "Product not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		handlers.Error(c, http.StatusBadRequest, "image: a file is required")
		return
	}

	ctx := c.Request.Context()
	p, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		h.productWriteError(c, err)
		return
	}

	key, err := h.images.Upload(ctx, id, file)
	switch {
	case errors.Is(err, services.ErrImageTooLarge):
		handlers.Error(c, http.StatusRequestEntityTooLarge, "image: file exceeds 5 MB")
		return
	case errors.Is(err, services.ErrUnsupportedImage):
		handlers.Error(c, http.StatusBadRequest, "image: only JPEG, PNG, WebP and GIF are accepted")
		return
	case err != nil:
		handlers.ServerError(c, "Uploading product image", err)
		return
	}

	if err := h.catalog.SetProductImage(ctx, id, key); err != nil {
		if rmErr := h.images.Remove(ctx, key); rmErr != nil {
			log.Printf("⚠️ Orphan image %s: %v", key, rmErr)
		}
		h.productWriteError(c, err)
		return
	}
	if err := h.images.Remove(ctx, p.Image); err != nil {
		log.Printf("⚠️ Previous image %s of product %d left behind: %v", p.Image, id, err)
	}

	p.Image = key
	log.Printf("📤 Image of product %d updated", id)
	c.JSON(http.StatusOK, handlers.Product(ctx, h.images, *p))
}
