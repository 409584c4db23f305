package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travel_ideas/internal/domain"
)

// CompareStore keeps one Redis list per session. Every write or read slides the
// session TTL; an idle session expires and its list goes with it.
type CompareStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewCompareStore(c *redis.Client, ttl time.Duration) *CompareStore {
	return &CompareStore{c: c, ttl: ttl}
}

func compareKey(sessionID string) string { return "compare:" + sessionID }

func (s *CompareStore) Append(ctx context.Context, sessionID string, item domain.CompareItem) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	key := compareKey(sessionID)
	_, err = s.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, b)
		if s.ttl > 0 {
			p.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

func (s *CompareStore) List(ctx context.Context, sessionID string) ([]domain.CompareItem, error) {
	key := compareKey(sessionID)
	raw, err := s.c.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompareItem, 0, len(raw))
	for i, r := range raw {
		var it domain.CompareItem
		if err := json.Unmarshal([]byte(r), &it); err != nil {
			return nil, fmt.Errorf("compare item %d: %w", i, err)
		}
		out = append(out, it)
	}
	if len(raw) > 0 && s.ttl > 0 {
		_ = s.c.Expire(ctx, key, s.ttl).Err()
	}
	return out, nil
}

func (s *CompareStore) Clear(ctx context.Context, sessionID string) error {
	return s.c.Del(ctx, compareKey(sessionID)).Err()
}
