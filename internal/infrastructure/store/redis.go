package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	scanKeyPrefix = "flipscan:scans:"
	proSetKey     = "flipscan:pro"
)

type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) IncrScans(ctx context.Context, userID string) (int64, error) {
	count, err := r.client.Incr(ctx, scanKeyPrefix+userID).Result()
	if err != nil {
		return 0, fmt.Errorf("redis.Incr: %w", err)
	}

	return count, nil
}

func (r *Redis) Scans(ctx context.Context, userID string) (int64, error) {
	count, err := r.client.Get(ctx, scanKeyPrefix+userID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("redis.Get: %w", err)
	}

	return count, nil
}

func (r *Redis) GrantPro(ctx context.Context, userID string) error {
	if err := r.client.SAdd(ctx, proSetKey, userID).Err(); err != nil {
		return fmt.Errorf("redis.SAdd: %w", err)
	}

	return nil
}

func (r *Redis) IsPro(ctx context.Context, userID string) (bool, error) {
	isMember, err := r.client.SIsMember(ctx, proSetKey, userID).Result()
	if err != nil {
		return false, fmt.Errorf("redis.SIsMember: %w", err)
	}

	return isMember, nil
}
