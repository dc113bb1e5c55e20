package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/utils"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxUser     = "user"
)

// AuthRequired rejects requests without a valid Bearer access token.
func AuthRequired(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
			return
		}
		if !authenticate(c, tokens, header) {
			return
		}
		c.Next()
	}
}

// AuthOptional identifies the caller when a token is sent. A token that is
// present but invalid is still rejected.
func AuthOptional(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" && !authenticate(c, tokens, header) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *utils.TokenIssuer, header string) bool {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
		return false
	}

	claims, err := tokens.Parse(token, utils.AccessToken)
	if err != nil {
		log.Printf("⚠️ Rejected token: %v", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return false
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	return true
}

// UserID returns the authenticated caller, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
