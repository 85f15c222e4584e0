package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
)

// RedisStore keeps houses in a single hash, one JSON document per fid.
// HSETNX gives the same first-writer-wins semantics as the memory store.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "rizz"
	}
	return &RedisStore{client: client, key: keyPrefix + ":houses"}
}

func (s *RedisStore) Get(ctx context.Context, fid int64) (*entity.House, error) {
	raw, err := s.client.HGet(ctx, s.key, strconv.FormatInt(fid, 10)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget: %w", err)
	}
	var h entity.House
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, fmt.Errorf("decode house %d: %w", fid, err)
	}
	return &h, nil
}

func (s *RedisStore) PutIfAbsent(ctx context.Context, h *entity.House) (*entity.House, bool, error) {
	raw, err := json.Marshal(h)
	if err != nil {
		return nil, false, fmt.Errorf("encode house %d: %w", h.FID, err)
	}
	created, err := s.client.HSetNX(ctx, s.key, strconv.FormatInt(h.FID, 10), raw).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis hsetnx: %w", err)
	}
	if created {
		cp := *h
		return &cp, true, nil
	}
	stored, err := s.Get(ctx, h.FID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

func (s *RedisStore) ListAll(ctx context.Context) ([]*entity.House, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	out := make([]*entity.House, 0, len(all))
	for fid, raw := range all {
		var h entity.House
		if err := json.Unmarshal([]byte(raw), &h); err != nil {
			return nil, fmt.Errorf("decode house %s: %w", fid, err)
		}
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].FID < out[j].FID
	})
	return out, nil
}
