package config

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestConnectRedisDisabledByDefault(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "")

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
	assert.Nil(t, GetRedisClient())
}

func TestConnectRedisExplicitlyDisabled(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedisUnreachableAddress(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "invalid-address:99999")

	rdb, err := ConnectRedis()
	assert.Error(t, err)
	assert.Nil(t, rdb)
	assert.Nil(t, GetRedisClient())
}

func TestConnectRedisInvalidDBNumberFallsBackToZero(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "invalid-address:99999")
	t.Setenv("REDIS_DB", "not-a-number")

	// The invalid DB number must not panic; the dial failure is expected.
	_, err := ConnectRedis()
	assert.Error(t, err)
}

func TestSetAndResetRedisClientForTest(t *testing.T) {
	client, _ := redismock.NewClientMock()
	SetRedisClientForTest(client)
	assert.Equal(t, client, GetRedisClient())

	ResetRedisClientForTest()
	assert.Nil(t, GetRedisClient())
}

func TestConnectRedisConcurrentCalls(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")

	type callResult struct {
		rdb interface{}
		err error
	}
	done := make(chan callResult, 5)
	for i := 0; i < 5; i++ {
		go func() {
			rdb, err := ConnectRedis()
			done <- callResult{rdb: rdb, err: err}
		}()
	}

	for i := 0; i < 5; i++ {
		res := <-done
		assert.NoError(t, res.err)
		assert.Nil(t, res.rdb)
	}
}
