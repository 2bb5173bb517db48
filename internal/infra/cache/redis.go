package cache

import (
	"context"
	"strings"
	"time"

	"serial-inventory/internal/pkg/config"
	"serial-inventory/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func NewRedis(cfg config.RedisConfig) (*redis.Client, func() error) {
	addr := cfg.Addr
	if !strings.Contains(addr, ":") {
		addr = addr + ":6379"
	}

	r := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return r, r.Close
}

// RedisDeduper remembers delivery keys with SET NX so redelivered events are seen once.
type RedisDeduper struct {
	client redis.Cmdable
}

func NewRedisDeduper(client redis.Cmdable) *RedisDeduper {
	return &RedisDeduper{client: client}
}

func (d *RedisDeduper) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, errs.Wrapf(err, "failed to claim %s", key)
	}
	return ok, nil
}

func (d *RedisDeduper) Forget(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, key).Err(); err != nil {
		return errs.Wrapf(err, "failed to forget %s", key)
	}
	return nil
}

// NoopDeduper claims every key. Used when dedupe is switched off.
type NoopDeduper struct{}

func (NoopDeduper) Claim(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (NoopDeduper) Forget(context.Context, string) error                       { return nil }
