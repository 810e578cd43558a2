package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is a logged-in staff session. Tokens are also cached in Redis;
// this table is the source of truth when the cache is unavailable.
type Session struct {
	gorm.Model
	StaffID      uint      `json:"staff_id" gorm:"index;not null"`
	SessionToken string    `json:"session_token" gorm:"type:varchar(191);uniqueIndex;not null"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
}
