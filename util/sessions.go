package util

import (
	"context"
	"fmt"
	"time"

	"github.com/medirec/clinic-backend/config"
	"github.com/redis/go-redis/v9"
)

// Redis session cache. The sessions table stays the source of truth; these
// helpers only shortcut the per-request DB lookup. Every function degrades
// to a no-op when Redis is unavailable.

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func staffSetKey(staffID uint) string {
	return fmt.Sprintf("staff_sessions:%d", staffID)
}

// CacheSession stores token -> staff id with the session's remaining TTL and
// adds the token to the per-staff set used for bulk invalidation.
func CacheSession(staffID uint, token string, expiresAt time.Time) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx := context.Background()
	if err := rdb.Set(ctx, sessionKey(token), staffID, ttl).Err(); err != nil {
		return err
	}
	return rdb.SAdd(ctx, staffSetKey(staffID), token).Err()
}

// SessionFromCache resolves a session token to a staff id. The second return
// is false on cache miss or when Redis is unavailable.
func SessionFromCache(token string) (uint, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, false
	}
	ctx := context.Background()
	id, err := rdb.Get(ctx, sessionKey(token)).Uint64()
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// DropSession removes a single token from the cache and from the per-staff
// set, deleting the set when it becomes empty.
func DropSession(staffID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	if err := rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}
	script := `
		local removed = redis.call('SREM', KEYS[1], ARGV[1])
		if removed > 0 then
			local count = redis.call('SCARD', KEYS[1])
			if count == 0 then
				redis.call('DEL', KEYS[1])
			end
		end
		return removed
	`
	return rdb.Eval(ctx, script, []string{staffSetKey(staffID)}, token).Err()
}

// InvalidateStaffSessions drops every cached session for the given staff
// member. Best-effort: callers may ignore the returned error.
func InvalidateStaffSessions(staffID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	members, err := rdb.SMembers(ctx, staffSetKey(staffID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, tok := range members {
		_ = rdb.Del(ctx, sessionKey(tok)).Err()
	}
	return rdb.Del(ctx, staffSetKey(staffID)).Err()
}
