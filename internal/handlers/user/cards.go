package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/services"
)

// 🟢 POST /api/save-card {"cardNumber", "expiry"}
func (h *Handler) SaveCard(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		CardNumber string `json:"cardNumber"`
		Expiry     string `json:"expiry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	card, err := h.cards.Save(c.Request.Context(), uid, input.CardNumber, input.Expiry)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		handlers.Error(c, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		handlers.ServerError(c, "Saving card", err)
		return
	}

	log.Printf("💳 Card ending %s saved for user %d", card.Last4, uid)
	c.JSON(http.StatusCreated, gin.H{"message": "Card saved securely", "card": card})
}

// 🔵 GET /api/saved-cards
func (h *Handler) SavedCards(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	cards, err := h.cards.List(c.Request.Context(), uid)
	if err != nil {
		handlers.ServerError(c, "Listing cards", err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
