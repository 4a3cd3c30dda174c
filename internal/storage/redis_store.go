package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"syncflow-curator/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore caches curated snapshots so downstream consumers can read the
// latest collection or query top deals without re-running the pipeline.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func snapshotKey(period string) string {
	return fmt.Sprintf("deals:snapshot:%s", period)
}

func rankKey(period string) string {
	return fmt.Sprintf("deals:rank:%s", period)
}

func dealKey(id string) string {
	return fmt.Sprintf("deals:item:%s", id)
}

const latestKey = "deals:latest"

// SaveSnapshot stores a curated collection under the given period key and
// points deals:latest at it. The collection JSON preserves the exact curated
// order; the rank ZSET additionally indexes deal IDs by score.
func (s *RedisStore) SaveSnapshot(ctx context.Context, period string, deals []model.Deal) error {
	b, err := json.Marshal(model.Collection{Deals: deals})
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, snapshotKey(period), b, 7*24*time.Hour).Err(); err != nil { // expire after a week
		return err
	}
	for _, d := range deals {
		db, err := json.Marshal(d)
		if err != nil {
			return err
		}
		if err := s.rdb.Set(ctx, dealKey(d.ID), db, 7*24*time.Hour).Err(); err != nil {
			return err
		}
		z := redis.Z{Score: float64(d.Score), Member: d.ID}
		if err := s.rdb.ZAdd(ctx, rankKey(period), z).Err(); err != nil {
			return err
		}
	}
	if err := s.rdb.Expire(ctx, rankKey(period), 7*24*time.Hour).Err(); err != nil {
		return err
	}
	return s.rdb.Set(ctx, latestKey, period, 0).Err()
}

// LoadSnapshot returns the curated collection for a period in its original
// order. A missing snapshot yields an empty slice and no error.
func (s *RedisStore) LoadSnapshot(ctx context.Context, period string) ([]model.Deal, error) {
	b, err := s.rdb.Get(ctx, snapshotKey(period)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c model.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return c.Deals, nil
}

// LatestPeriod returns the period key of the most recent snapshot, or ""
// when none has been saved yet.
func (s *RedisStore) LatestPeriod(ctx context.Context) (string, error) {
	p, err := s.rdb.Get(ctx, latestKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p, nil
}

// TopDeals retrieves up to n deals for a period by descending score from the
// rank index.
func (s *RedisStore) TopDeals(ctx context.Context, period string, n int) ([]model.Deal, error) {
	ids, err := s.rdb.ZRevRange(ctx, rankKey(period), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Deal, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, dealKey(id)).Bytes()
		if err == redis.Nil {
			continue // deal expired out from under the index
		}
		if err != nil {
			return nil, err
		}
		var d model.Deal
		if err := json.Unmarshal(b, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
