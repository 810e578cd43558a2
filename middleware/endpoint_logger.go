package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medirec/clinic-backend/util"
)

// EndpointCallLogger logs each HTTP request as an audit event. It relies on
// DatabaseMiddleware having set the DB in context and util.SetAuditDB having
// been called during startup so events are persisted to the audit_logs table.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		staffID, _ := GetStaffID(c)
		email, _ := GetStaffEmail(c)
		if email == "" && staffID != 0 {
			email = util.GetStaffEmail(GetDB(c), staffID)
		}

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if staffID != 0 {
			details["staff_id"] = staffID
		}

		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventEndpointCall,
			StaffID:   fmt.Sprintf("%d", staffID),
			Email:     email,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
