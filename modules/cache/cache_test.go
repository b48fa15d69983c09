package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tests against a live server require Redis on localhost:6379.
const testRedisAddr = "localhost:6379"

type profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func setupTestCache(t *testing.T, prefix string) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	c := New(client, prefix, time.Minute)
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return c
}

func TestNew(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	defer client.Close()

	c := New(client, "test:", 10*time.Minute)

	if c.prefix != "test:" {
		t.Errorf("prefix = %q, want %q", c.prefix, "test:")
	}
	if c.ttl != 10*time.Minute {
		t.Errorf("ttl = %v, want %v", c.ttl, 10*time.Minute)
	}
}

func TestCache_SetGetDelete(t *testing.T) {
	c := setupTestCache(t, "taskboard-test:")
	ctx := context.Background()

	var got profile
	found, err := c.Get(ctx, "user:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Fatal("Get() found a value before Set")
	}

	want := profile{ID: "1", Name: "Ada"}
	if err := c.Set(ctx, "user:1", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	found, err = c.Get(ctx, "user:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || got != want {
		t.Errorf("Get() = %+v, %v; want %+v, true", got, found, want)
	}

	if err := c.Delete(ctx, "user:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	found, _ = c.Get(ctx, "user:1", &got)
	if found {
		t.Error("Get() found a value after Delete")
	}

	stats := c.Snapshot()
	if stats.Hits != 1 || stats.Misses != 2 || stats.Sets != 1 {
		t.Errorf("Snapshot() = %+v", stats)
	}
}

func TestNop(t *testing.T) {
	var s Store = Nop{}
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	var out string
	found, err := s.Get(ctx, "k", &out)
	if err != nil || found {
		t.Errorf("Get() = %v, %v; want false, nil", found, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}
