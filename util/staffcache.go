package util

import (
	"container/list"
	"os"
	"strconv"
	"sync"

	"gorm.io/gorm"
)

// LRU cache for staffID -> email, used by the auth middleware to avoid a DB
// round trip per request.
type staffEntry struct {
	staffID uint
	email   string
}

type staffLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[uint]*list.Element
	capacity int
}

var staffCache *staffLRU

// InitStaffEmailCache initializes the LRU cache with the given capacity.
// If capacity <= 0, a default of 1000 is used.
func InitStaffEmailCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	staffCache = &staffLRU{
		ll:       list.New(),
		cache:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

// InitStaffEmailCacheFromEnv initializes the cache using STAFF_EMAIL_CACHE_SIZE.
func InitStaffEmailCacheFromEnv() {
	if n, err := strconv.Atoi(os.Getenv("STAFF_EMAIL_CACHE_SIZE")); err == nil {
		InitStaffEmailCache(n)
		return
	}
	InitStaffEmailCache(0)
}

// StaffEmailCacheGet returns the cached email and true when present.
func StaffEmailCacheGet(staffID uint) (string, bool) {
	if staffCache == nil {
		return "", false
	}
	staffCache.mu.Lock()
	defer staffCache.mu.Unlock()
	if ele, ok := staffCache.cache[staffID]; ok {
		staffCache.ll.MoveToFront(ele)
		if e, ok := ele.Value.(staffEntry); ok {
			return e.email, true
		}
	}
	return "", false
}

// StaffEmailCacheSet stores the email for a staff id, evicting the least
// recently used entry when over capacity.
func StaffEmailCacheSet(staffID uint, email string) {
	if staffCache == nil {
		return
	}
	staffCache.mu.Lock()
	defer staffCache.mu.Unlock()
	if ele, ok := staffCache.cache[staffID]; ok {
		staffCache.ll.MoveToFront(ele)
		ele.Value = staffEntry{staffID: staffID, email: email}
		return
	}
	ele := staffCache.ll.PushFront(staffEntry{staffID: staffID, email: email})
	staffCache.cache[staffID] = ele
	if staffCache.ll.Len() > staffCache.capacity {
		tail := staffCache.ll.Back()
		if tail != nil {
			if e, ok := tail.Value.(staffEntry); ok {
				delete(staffCache.cache, e.staffID)
			}
			staffCache.ll.Remove(tail)
		}
	}
}

// GetStaffEmail returns the email for staffID using the cache, falling back
// to the DB and caching the result.
func GetStaffEmail(db *gorm.DB, staffID uint) string {
	if staffID == 0 {
		return ""
	}
	if email, ok := StaffEmailCacheGet(staffID); ok {
		return email
	}
	if db == nil {
		return ""
	}
	var s struct{ Email string }
	if err := db.Table("staffs").Select("email").Where("id = ?", staffID).Take(&s).Error; err == nil {
		if s.Email != "" {
			StaffEmailCacheSet(staffID, s.Email)
		}
		return s.Email
	}
	return ""
}
