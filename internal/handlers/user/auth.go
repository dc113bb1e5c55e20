package user

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/utils"
)

const invalidCredentials = "No active account found with the given credentials"

// 🟢 POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,max=150"`
		Email    string `json:"email" binding:"required,email,max=254"`
		Password string `json:"password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		handlers.ServerError(c, "Hashing password", err)
		return
	}

	user := &models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: hash,
		IsActive: true,
	}
	err = h.users.Create(c.Request.Context(), user)
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		handlers.Error(c, http.StatusBadRequest, "username: a user with that username already exists")
		return
	case errors.Is(err, repository.ErrEmailTaken):
		handlers.Error(c, http.StatusBadRequest, "email: a user with that email already exists")
		return
	case err != nil:
		handlers.ServerError(c, "Creating user", err)
		return
	}

	log.Printf("✅ User %q registered (id %d)", user.Username, user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// 🟢 POST /api/token
func (h *Handler) Token(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), input.Username)
	if errors.Is(err, repository.ErrNotFound) {
		handlers.Error(c, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		handlers.ServerError(c, "Loading user", err)
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil {
		log.Printf("⚠️ Unreadable password hash for user %d: %v", user.ID, err)
	}
	if !ok || !user.IsActive {
		handlers.Error(c, http.StatusUnauthorized, invalidCredentials)
		return
	}

	access, refresh, err := h.tokens.IssuePair(user)
	if err != nil {
		handlers.ServerError(c, "Signing tokens", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// 🟢 POST /api/token/refresh
func (h *Handler) TokenRefresh(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	access, err := h.tokens.Refresh(input.Refresh)
	if err != nil {
		handlers.Error(c, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
