package repo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one voter set per target (SADD is atomic, which covers
// the check-then-insert requirement).
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "rizz"
	}
	return &RedisStore{client: client, prefix: keyPrefix}
}

func (s *RedisStore) key(targetFID int64) string {
	return fmt.Sprintf("%s:votes:%d", s.prefix, targetFID)
}

func (s *RedisStore) Add(ctx context.Context, targetFID, voterFID int64) (bool, error) {
	added, err := s.client.SAdd(ctx, s.key(targetFID), voterFID).Result()
	if err != nil {
		return false, fmt.Errorf("redis sadd: %w", err)
	}
	return added == 1, nil
}

func (s *RedisStore) Contains(ctx context.Context, targetFID, voterFID int64) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key(targetFID), voterFID).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) CountFor(ctx context.Context, targetFID int64) (int, error) {
	n, err := s.client.SCard(ctx, s.key(targetFID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return int(n), nil
}
