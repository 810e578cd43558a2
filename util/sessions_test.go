package util

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/medirec/clinic-backend/config"
	"github.com/stretchr/testify/assert"
)

func TestSessionHelpersNoRedis(t *testing.T) {
	config.ResetRedisClientForTest()

	assert.NoError(t, CacheSession(1, "tok", time.Now().Add(time.Hour)))
	_, ok := SessionFromCache("tok")
	assert.False(t, ok)
	assert.NoError(t, DropSession(1, "tok"))
	assert.NoError(t, InvalidateStaffSessions(1))
}

func TestCacheSessionExpiredTokenIsSkipped(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(config.ResetRedisClientForTest)

	// No expectations registered: an already-expired session must not touch Redis.
	assert.NoError(t, CacheSession(1, "tok", time.Now().Add(-time.Minute)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFromCacheHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(config.ResetRedisClientForTest)

	mock.ExpectGet("session:tok-abc").SetVal("42")

	id, ok := SessionFromCache("tok-abc")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFromCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(config.ResetRedisClientForTest)

	mock.ExpectGet("session:unknown").RedisNil()

	_, ok := SessionFromCache("unknown")
	assert.False(t, ok)
}
