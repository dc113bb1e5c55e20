package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/cache"
)

// LoginRateLimit locks a username for cache.LoginLockout after
// cache.MaxLoginFailures failed logins. Without Redis it is a no-op.
func LoginRateLimit(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Enabled() {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var input struct {
			Username string `json:"username"`
		}
		if json.Unmarshal(body, &input) != nil || input.Username == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		locked, ttl, err := store.LoginLocked(ctx, input.Username)
		if err != nil {
			log.Printf("⚠️ Login rate limit check failed: %v", err)
		}
		if locked {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed login attempts. Try again in %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			n, err := store.RecordLoginFailure(ctx, input.Username)
			if err != nil {
				log.Printf("⚠️ Recording login failure: %v", err)
				return
			}
			if n >= cache.MaxLoginFailures {
				log.Printf("🚫 Login locked for %q", input.Username)
			}
		case http.StatusOK:
			if err := store.ClearLoginFailures(ctx, input.Username); err != nil {
				log.Printf("⚠️ Clearing login failures: %v", err)
			}
		}
	}
}
