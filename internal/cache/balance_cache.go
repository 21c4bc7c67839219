package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// BalanceCache holds the last wallet balance fetched for each user.
type BalanceCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewBalanceCache(client *redisv9.Client, ttl time.Duration) *BalanceCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &BalanceCache{client: client, ttl: ttl}
}

func (c *BalanceCache) Get(ctx context.Context, userID uint) (float64, bool, error) {
	raw, err := c.client.Get(ctx, c.balanceKey(userID)).Result()
	if err == redisv9.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get balance failed: %w", err)
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, nil
	}
	return amount, true, nil
}

func (c *BalanceCache) Set(ctx context.Context, userID uint, amount float64) error {
	value := strconv.FormatFloat(amount, 'f', -1, 64)
	if err := c.client.Set(ctx, c.balanceKey(userID), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set balance failed: %w", err)
	}
	return nil
}

func (c *BalanceCache) Delete(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.balanceKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete balance failed: %w", err)
	}
	return nil
}

func (c *BalanceCache) balanceKey(userID uint) string {
	return fmt.Sprintf("payments:balance:%d", userID)
}
