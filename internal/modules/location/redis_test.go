// Redis-backed store tests; require a reachable instance.
package location

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kemsguy7/pick-n-get/internal/types"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("PICKNGET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PICKNGET_TEST_REDIS_ADDR not set; skipping Redis-backed tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test db: %v", err)
	}
	return NewRedisStore(client)
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)

	want := Position{
		Point:     types.Point{Lat: 6.524379, Lng: 3.379206},
		Heading:   182.5,
		Timestamp: time.Now().Truncate(time.Millisecond),
	}
	if err := store.Set(ctx, 11, want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found, err := store.Get(ctx, 11)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Point != want.Point || got.Heading != want.Heading {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp %v, want %v", got.Timestamp, want.Timestamp)
	}

	if err := store.Remove(ctx, 11); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := store.Get(ctx, 11); found {
		t.Fatal("expected entry gone after remove")
	}
}

func TestRedisSweepStale(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)

	stale := Position{Point: types.Point{Lat: 1, Lng: 1}, Timestamp: time.Now().Add(-time.Hour)}
	fresh := Position{Point: types.Point{Lat: 2, Lng: 2}, Timestamp: time.Now()}
	if err := store.Set(ctx, 21, stale); err != nil {
		t.Fatalf("set stale: %v", err)
	}
	if err := store.Set(ctx, 22, fresh); err != nil {
		t.Fatalf("set fresh: %v", err)
	}

	removed, err := store.SweepStale(ctx, time.Now().Add(-30*time.Minute))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, found, _ := store.Get(ctx, 21); found {
		t.Fatal("stale entry survived the sweep")
	}
	if _, found, _ := store.Get(ctx, 22); !found {
		t.Fatal("fresh entry removed by the sweep")
	}
}
