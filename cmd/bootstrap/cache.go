package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"slotbooker/internal/infra/cache"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const redisPingTimeout = 5 * time.Second

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewExposureCache,
	),
)

// NewExposureCache selects redis when an address is configured, so
// stickiness survives restarts and spans instances; otherwise the
// in-process cache keeps single-node deployments dependency-free.
func NewExposureCache(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (queries.ExposureCache, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("using in-memory exposure cache")
		return cache.NewMemoryExposureCache(clk), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("using redis exposure cache", "addr", cfg.Redis.Addr)
	return cache.NewRedisExposureCache(client), nil
}
