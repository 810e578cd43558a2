package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medirec/clinic-backend/model"
	"github.com/medirec/clinic-backend/util"
	"gorm.io/gorm"
)

const (
	ctxKeyDB         = "db"
	ctxKeyStaffID    = "staff_id"
	ctxKeyStaffEmail = "staff_email"
	ctxKeyStaffRole  = "staff_role"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the shared gorm handle into the request context
// so handlers never reach for a process-wide singleton.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyDB, db)
		c.Next()
	}
}

// GetDB returns the request-scoped gorm handle, or nil when the middleware
// did not run.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(ctxKeyDB)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetStaffID returns the authenticated staff id from the request context.
func GetStaffID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxKeyStaffID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetStaffEmail returns the authenticated staff email from the request context.
func GetStaffEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyStaffEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

// GetStaffRole returns the authenticated staff role from the request context.
func GetStaffRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyStaffRole)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// RequireRoles allows the request through only when the authenticated staff
// member holds one of the given roles. Must run after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetStaffRole(c)
		if !ok {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Authentication required",
				Err: fmt.Errorf("staff role missing from context"),
			})
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		email, _ := GetStaffEmail(c)
		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventUnauthorized,
			Email:     email,
			IP:        c.ClientIP(),
			Message:   fmt.Sprintf("Role %s denied on %s", role, c.Request.URL.Path),
		})
		util.CallUserForbidden(c, util.APIErrorParams{
			Msg: "Insufficient role for this operation",
			Err: fmt.Errorf("role %s is not permitted", role),
		})
		c.Abort()
	}
}

// AuthRequired validates the session-token header against the Redis cache
// first and the sessions table as fallback, then stores the staff identity
// in the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("session-token")
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session token is missing in 'session-token' header",
				Err: fmt.Errorf("session token is empty"),
			})
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		staffID, cached := util.SessionFromCache(token)
		if !cached {
			var session model.Session
			err := db.Where("session_token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
			if err != nil {
				util.LogAuditEvent(util.AuditEvent{
					EventType: util.EventUnauthorized,
					IP:        c.ClientIP(),
					Message:   fmt.Sprintf("Rejected session token on %s", c.Request.URL.Path),
				})
				util.CallUserNotAuthorized(c, util.APIErrorParams{
					Msg: "Session not found or has expired",
					Err: fmt.Errorf("invalid session token"),
				})
				c.Abort()
				return
			}
			staffID = session.StaffID
		}

		var staff model.Staff
		if err := db.First(&staff, staffID).Error; err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Staff associated with the session was not found",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(ctxKeyStaffID, staff.ID)
		c.Set(ctxKeyStaffEmail, staff.Email)
		c.Set(ctxKeyStaffRole, staff.Role)
		util.StaffEmailCacheSet(staff.ID, staff.Email)
		c.Next()
	}
}
