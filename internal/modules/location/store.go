package location

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the live-location backend: set / get / remove plus a stale sweep.
// A missing entry is (Position{}, false, nil), never an error.
type Store interface {
	Set(ctx context.Context, riderID int64, pos Position) error
	Get(ctx context.Context, riderID int64) (Position, bool, error)
	Remove(ctx context.Context, riderID int64) error
	SweepStale(ctx context.Context, cutoff time.Time) (int, error)
}

const (
	riderKeyPrefix = "loc:rider:%d"
	indexKey       = "loc:riders"
)

// RedisStore keeps one hash per rider plus a timestamp-scored index set used
// by the sweeper.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) Set(ctx context.Context, riderID int64, pos Position) error {
	pipe := s.redis.Pipeline()
	pipe.HSet(ctx, riderKey(riderID), map[string]interface{}{
		"lat":     strconv.FormatFloat(pos.Point.Lat, 'f', -1, 64),
		"lng":     strconv.FormatFloat(pos.Point.Lng, 'f', -1, 64),
		"heading": strconv.FormatFloat(pos.Heading, 'f', -1, 64),
		"ts":      strconv.FormatInt(pos.Timestamp.UnixMilli(), 10),
	})
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(pos.Timestamp.UnixMilli()), Member: memberFor(riderID)})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, riderID int64) (Position, bool, error) {
	m, err := s.redis.HGetAll(ctx, riderKey(riderID)).Result()
	if err != nil {
		return Position{}, false, err
	}
	if len(m) == 0 {
		return Position{}, false, nil
	}

	var pos Position
	pos.Point.Lat, err = strconv.ParseFloat(m["lat"], 64)
	if err != nil {
		return Position{}, false, fmt.Errorf("corrupt lat for rider %d: %w", riderID, err)
	}
	pos.Point.Lng, err = strconv.ParseFloat(m["lng"], 64)
	if err != nil {
		return Position{}, false, fmt.Errorf("corrupt lng for rider %d: %w", riderID, err)
	}
	if v, ok := m["heading"]; ok {
		pos.Heading, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["ts"]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			pos.Timestamp = time.UnixMilli(ms)
		}
	}
	return pos, true, nil
}

func (s *RedisStore) Remove(ctx context.Context, riderID int64) error {
	pipe := s.redis.Pipeline()
	pipe.Del(ctx, riderKey(riderID))
	pipe.ZRem(ctx, indexKey, memberFor(riderID))
	_, err := pipe.Exec(ctx)
	return err
}

// SweepStale drops every entry last updated before cutoff.
func (s *RedisStore) SweepStale(ctx context.Context, cutoff time.Time) (int, error) {
	max := strconv.FormatInt(cutoff.UnixMilli(), 10)
	members, err := s.redis.ZRangeByScore(ctx, indexKey, &redis.ZRangeBy{Min: "-inf", Max: max}).Result()
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}

	pipe := s.redis.Pipeline()
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		pipe.Del(ctx, riderKey(id))
	}
	pipe.ZRemRangeByScore(ctx, indexKey, "-inf", max)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return len(members), nil
}

func riderKey(riderID int64) string {
	return fmt.Sprintf(riderKeyPrefix, riderID)
}

func memberFor(riderID int64) string {
	return strconv.FormatInt(riderID, 10)
}
