// Package cache keeps account details in redis in front of the ledger.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "account:"

// AccountCache stores AccountInfo as JSON under account:<number>. A nil
// client turns every call into a miss, and redis errors are logged, never
// returned: the ledger stays the source of truth.
type AccountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAccountCache(rdb *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{rdb: rdb, ttl: ttl}
}

func Key(accountNumber string) string {
	return keyPrefix + accountNumber
}

func (c *AccountCache) Get(ctx context.Context, accountNumber string) (*models.AccountInfo, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, Key(accountNumber)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[CACHE] Get %s failed: %v", accountNumber, err)
		return nil, false
	}

	var info models.AccountInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		log.Printf("[CACHE] Dropping unreadable entry for %s: %v", accountNumber, err)
		c.Invalidate(ctx, accountNumber)
		return nil, false
	}
	return &info, true
}

func (c *AccountCache) Set(ctx context.Context, info *models.AccountInfo) {
	if c == nil || c.rdb == nil || info == nil {
		return
	}

	data, err := json.Marshal(info)
	if err != nil {
		log.Printf("[CACHE] Encode %s failed: %v", info.AccountNumber, err)
		return
	}
	if err := c.rdb.Set(ctx, Key(info.AccountNumber), string(data), c.ttl).Err(); err != nil {
		log.Printf("[CACHE] Set %s failed: %v", info.AccountNumber, err)
	}
}

func (c *AccountCache) Invalidate(ctx context.Context, accountNumbers ...string) {
	if c == nil || c.rdb == nil || len(accountNumbers) == 0 {
		return
	}

	keys := make([]string, 0, len(accountNumbers))
	for _, n := range accountNumbers {
		keys = append(keys, Key(n))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[CACHE] Invalidate %v failed: %v", accountNumbers, err)
	}
}
