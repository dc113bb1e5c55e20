package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
)

type userLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// RequireEmployee lets through active staff users and members of the
// Employee group. It must run after AuthRequired.
func RequireEmployee(users userLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Printf("❌ Loading user %d: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !user.IsEmployee() {
			log.Printf("🚫 Manager access denied for user %d", userID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			return
		}

		c.Set(ctxUser, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by RequireEmployee.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
