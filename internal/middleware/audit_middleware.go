package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/models"
)

type auditRecorder interface {
	RecordAudit(ctx context.Context, entry models.AuditLog) error
}

// AuditAction records the outcome of a manager action once the handler has
// run. The write happens in the background.
func AuditAction(recorder auditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil {
			return
		}

		entry := models.AuditLog{
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
			Timestamp:  time.Now().UTC(),
		}
		if id, ok := UserID(c); ok {
			entry.UserID = fmt.Sprint(id)
		}
		if entry.ResourceID == "" {
			entry.ResourceID = c.GetString("audit_resource_id")
		}
		status := c.Writer.Status()
		entry.Success = status >= 200 && status < 300
		if !entry.Success {
			entry.ErrorMsg = http.StatusText(status)
		}

		ctx := context.WithoutCancel(c.Request.Context())
		go func() {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := recorder.RecordAudit(ctx, entry); err != nil {
				log.Printf("❌ Audit %s on %s/%s: %v", action, resource, entry.ResourceID, err)
			}
		}()
	}
}

// SetAuditResource names the resource created by a handler, for routes
// without an :id parameter.
func SetAuditResource(c *gin.Context, id uint) {
	c.Set("audit_resource_id", fmt.Sprint(id))
}
