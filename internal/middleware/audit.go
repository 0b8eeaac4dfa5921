package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/admissions-api/internal/models"
)

type auditStore interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
}

// Audit records an audit entry after a mutating request succeeds. Failed
// requests change nothing and leave no trail; a failed write of the entry
// itself never fails the request.
func Audit(store auditStore, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if store == nil || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		var userID *string
		if v, ok := c.Get(ContextUserKey); ok {
			if claims, ok := v.(*models.JWTClaims); ok {
				userID = &claims.UserID
			}
		}

		detail, _ := json.Marshal(map[string]interface{}{
			"path":       c.FullPath(),
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})

		_ = store.Create(c.Request.Context(), &models.AuditEntry{
			UserID:    userID,
			Action:    action,
			Resource:  resource,
			Detail:    detail,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
	}
}
