package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/medirec/clinic-backend/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType classifies persisted audit events.
type AuditEventType string

const (
	EventLoginSuccess      AuditEventType = "LOGIN_SUCCESS"
	EventLoginFailure      AuditEventType = "LOGIN_FAILURE"
	EventLogout            AuditEventType = "LOGOUT"
	EventUnauthorized      AuditEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall      AuditEventType = "ENDPOINT_CALL"
	EventStockDispensed    AuditEventType = "STOCK_DISPENSED"
	EventStockReturned     AuditEventType = "STOCK_RETURNED"
	EventStockRollback     AuditEventType = "STOCK_ROLLBACK"
	EventRollbackFailed    AuditEventType = "STOCK_ROLLBACK_FAILED"
)

// AuditEvent is an event to be logged and, when a DB is attached, persisted.
type AuditEvent struct {
	EventType AuditEventType
	StaffID   string
	Email     string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var auditLogger *log.Logger
var auditDB *gorm.DB

// SetAuditDB attaches a gorm DB so audit events are persisted to the
// audit_logs table. Call during startup after DB initialization.
func SetAuditDB(db *gorm.DB) {
	auditDB = db
}

func init() {
	auditLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue strips newlines and truncates values that could break
// single-line log parsing.
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent writes the event to the audit log and, best-effort, to the
// database. A failed persist never fails the calling operation.
func LogAuditEvent(event AuditEvent) {
	msg := fmt.Sprintf("Event=%s StaffID=%s Email=%s IP=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.StaffID),
		sanitizeLogValue(event.Email),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.Message),
	)
	auditLogger.Println(msg)

	if auditDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.AuditLog{
		EventType: string(event.EventType),
		StaffID:   event.StaffID,
		Email:     sanitizeLogValue(event.Email),
		IP:        sanitizeLogValue(event.IP),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := auditDB.Create(&entry).Error; err != nil {
		auditLogger.Printf("Failed to persist audit event: %v", err)
	}
}

// LogStockAdjustment records one applied stock delta. The details carry the
// signed deltas so a partially applied sequence can be reconciled from data.
func LogStockAdjustment(event AuditEventType, checkupID, medicineID uint, quantity int) {
	LogAuditEvent(AuditEvent{
		EventType: event,
		Message:   fmt.Sprintf("Stock adjusted for medicine %d", medicineID),
		Details: map[string]interface{}{
			"checkup_id":  checkupID,
			"medicine_id": medicineID,
			"quantity":    quantity,
		},
	})
}

// LogRollbackFailure records a failed compensation. This is a data-integrity
// incident: the stock table is partially adjusted and needs manual
// reconciliation, so the event is flagged for operator alerting.
func LogRollbackFailure(medicineID uint, operation string, detail string) {
	auditLogger.Printf("ALERT: rollback failed for medicine %d (%s): %s", medicineID, operation, sanitizeLogValue(detail))
	LogAuditEvent(AuditEvent{
		EventType: EventRollbackFailed,
		Message:   fmt.Sprintf("Rollback of %s failed for medicine %d: %s", operation, medicineID, detail),
		Details: map[string]interface{}{
			"medicine_id": medicineID,
			"operation":   operation,
			"alert":       true,
		},
	})
}

// LogLoginSuccess logs a successful staff login.
func LogLoginSuccess(staffID uint, email, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventLoginSuccess,
		StaffID:   fmt.Sprintf("%d", staffID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Staff logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt.
func LogLoginFailure(email, ip, userAgent, reason string) {
	LogAuditEvent(AuditEvent{
		EventType: EventLoginFailure,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogLogout logs a staff logout.
func LogLogout(staffID uint, email, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventLogout,
		StaffID:   fmt.Sprintf("%d", staffID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Staff logged out",
	})
}

// GetAuditLoggerForTest returns the current audit logger for tests.
func GetAuditLoggerForTest() *log.Logger {
	return auditLogger
}

// SetAuditLoggerForTest replaces the audit logger for tests.
func SetAuditLoggerForTest(l *log.Logger) {
	auditLogger = l
}

// LogRateLimitExceeded logs a rejected request on a rate-limited endpoint.
func LogRateLimitExceeded(email, ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}
