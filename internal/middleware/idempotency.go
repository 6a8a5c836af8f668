package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	// IdempotencyHeader is the standard HTTP header for idempotency keys.
	IdempotencyHeader = "Idempotency-Key"

	// idempotencyCacheTTL defines how long 2xx responses are replayed from Redis.
	idempotencyCacheTTL = 24 * time.Hour

	// lockTimeout prevents indefinite locks if a request crashes mid-flight.
	lockTimeout = 10 * time.Second

	idempotencyKeyPrefix = "idempotency:"
	lockKeyPrefix        = "idempotency-lock:"
)

// bodyCaptureWriter duplicates the response body so a 2xx response can be
// cached for replay.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency returns a Gin middleware that replays cached responses for
// repeated requests carrying the same Idempotency-Key header. This shields
// the settlement endpoints from client retries at the HTTP layer; the
// database status compare-and-swap remains the authoritative at-most-once
// guard.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			// No idempotency key provided, process the request normally.
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)
		cacheKey := idempotencyKeyPrefix + key
		lockKey := lockKeyPrefix + key

		// Replay a previously cached response for this key.
		cached, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			logger.Info("Idempotency cache hit", "key", key)
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(http.StatusOK, cached)
			c.Abort()
			return
		}

		// Lock out concurrent requests carrying the same key.
		acquired, err := rdb.SetNX(ctx, lockKey, "processing", lockTimeout).Result()
		if err != nil {
			logger.Error("Idempotency lock acquisition failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !acquired {
			logger.Warn("Concurrent request with same idempotency key", "key", key)
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this idempotency key is currently being processed"})
			return
		}
		defer func() {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				logger.Error("Failed to release idempotency lock", "error", err)
			}
		}()

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		// Only successful outcomes are replayable; errors may be retried.
		status := writer.Status()
		if status >= 200 && status < 300 {
			if err := rdb.Set(ctx, cacheKey, writer.body.String(), idempotencyCacheTTL).Err(); err != nil {
				logger.Error("Failed to cache idempotent response", "error", err)
			}
		}
	}
}
