package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/middleware"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/services"
	"pceshop_back_end/internal/utils"
)

// Handler serves the customer endpoints: account, profile, cart, orders and
// saved cards.
type Handler struct {
	users    *repository.UserRepository
	carts    *repository.CartRepository
	orders   *repository.OrderRepository
	checkout *services.CheckoutService
	cards    *services.CardService
	tokens   *utils.TokenIssuer
	images   *services.ImageStore
}

func NewHandler(
	users *repository.UserRepository,
	carts *repository.CartRepository,
	orders *repository.OrderRepository,
	checkout *services.CheckoutService,
	cards *services.CardService,
	tokens *utils.TokenIssuer,
	images *services.ImageStore,
) *Handler {
	return &Handler{
		users:    users,
		carts:    carts,
		orders:   orders,
		checkout: checkout,
		cards:    cards,
		tokens:   tokens,
		images:   images,
	}
}

// currentUserID reads the authenticated user or answers 401.
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		handlers.Error(c, http.StatusUnauthorized, "Authentication credentials were not provided")
	}
	return id, ok
}
