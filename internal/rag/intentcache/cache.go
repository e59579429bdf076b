// Package intentcache memoizes interpreted question intents in Redis.
// The cache is strictly best-effort: any Redis failure reads as a miss and
// writes are fire-and-forget, so a degraded cache never degrades answers.
package intentcache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/rag/interpreter"
)

const keyPrefix = "rag:intent:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "intentcache"}),
	}
}

// Get returns the cached intent for question, or nil on miss or any error.
func (c *Cache) Get(ctx context.Context, question string) *interpreter.QuestionIntent {
	raw, err := c.client.Get(ctx, cacheKey(question)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("intent cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	var intent interpreter.QuestionIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		c.logger.Warn("intent cache entry corrupt", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return &intent
}

// Put stores an intent under the question's key. Failures are logged only.
func (c *Cache) Put(ctx context.Context, question string, intent *interpreter.QuestionIntent) {
	if intent == nil {
		return
	}

	raw, err := json.Marshal(intent)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, cacheKey(question), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("intent cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(question string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(question))
}
