package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
)

var (
	jwtSecret     = os.Getenv("JWTSECRET")
	jwtSecretByte = []byte(jwtSecret)
	jwtMutex      sync.RWMutex
)

// HashPassword hashes a password with HMAC-SHA256 keyed by the JWT secret.
func HashPassword(password string) string {
	h := hmac.New(sha256.New, GetJWTSecretByte())
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPassword reports whether plain hashes to the stored digest. Uses a
// constant-time comparison to prevent timing attacks.
func VerifyPassword(plain, stored string) bool {
	return hmac.Equal([]byte(HashPassword(plain)), []byte(stored))
}

// SetJWTSecret updates the secret used for both token signing and password
// hashing. Thread-safe; tests relying on deterministic secrets should avoid
// parallel execution.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecret = secret
	jwtSecretByte = []byte(secret)
}

// GetJWTSecret returns the current JWT secret as a string.
func GetJWTSecret() string {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return jwtSecret
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}
