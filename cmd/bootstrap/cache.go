package bootstrap

import (
	"context"
	"log/slog"

	"serial-inventory/internal/infra/cache"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/infra/repository"
	"serial-inventory/internal/pkg/config"
	"serial-inventory/internal/usecase/commands"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewDeduper,
	),
)

// NewDeduper picks the delivery dedupe store: Redis when REDIS_ADDR is set,
// Postgres otherwise, nothing when WEBHOOK_DEDUPE_TTL is zero.
func NewDeduper(lc fx.Lifecycle, cfg config.Config, dbtx db.DBTX) commands.Deduper {
	if cfg.Webhook.DedupeTTL <= 0 {
		slog.Info("webhook delivery dedupe disabled")
		return cache.NoopDeduper{}
	}

	if !cfg.Redis.Enabled() {
		deliveries := repository.NewDeliveryRepository(dbtx)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				n, err := deliveries.DeleteExpired(ctx)
				if err != nil {
					slog.Warn("failed to prune expired deliveries", "error", err.Error())
					return nil
				}
				slog.Info("using postgres for webhook delivery dedupe", "pruned", n)
				return nil
			},
		})
		return deliveries
	}

	client, closeFn := cache.NewRedis(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("redis ping failed, dedupe will fail open", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return closeFn()
		},
	})
	return cache.NewRedisDeduper(client)
}
