package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/services"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// 🔵 GET /api/manager/audit-logs?day=YYYY-MM-DD&limit=
//
// day defaults to the current UTC day.
func (h *Handler) AuditLogs(c *gin.Context) {
	day := c.DefaultQuery("day", time.Now().UTC().Format(time.DateOnly))
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		handlers.Error(c, http.StatusBadRequest, "day must be formatted YYYY-MM-DD")
		return
	}

	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handlers.Error(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	logs, err := h.ledger.AuditLogs(c.Request.Context(), day, limit)
	if errors.Is(err, services.ErrLedgerDisabled) {
		handlers.Error(c, http.StatusServiceUnavailable, "Audit log is not configured")
		return
	}
	if err != nil {
		handlers.ServerError(c, "Reading audit logs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
