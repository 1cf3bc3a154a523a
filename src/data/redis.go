package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownPrefix = "suggest:cooldown:"

// MustRedis connects or exits.
func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// AcquireCooldown claims a user's submission slot. It returns false while
// a previous submission is still inside the cooldown window.
func AcquireCooldown(ctx context.Context, rdb *redis.Client, userID string, window time.Duration) (bool, error) {
	return rdb.SetNX(ctx, cooldownPrefix+userID, "1", window).Result()
}

// CooldownRemaining reports how long until the user may submit again.
func CooldownRemaining(ctx context.Context, rdb *redis.Client, userID string) (time.Duration, error) {
	ttl, err := rdb.TTL(ctx, cooldownPrefix+userID).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
