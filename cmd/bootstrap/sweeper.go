package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"slotbooker/internal/pkg/config"
	"slotbooker/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the expiry sweep on a fixed interval for the life of
// the application. The sweep itself is safe to run concurrently, so a
// slow tick overlapping the next one is harmless.
func StartSweeper(lc fx.Lifecycle, sweep commands.SweepUseCase, cfg config.Config) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.Booking.SweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						runSweep(sweep)
					}
				}
			}()
			slog.Info("expiry sweeper started", "interval", cfg.Booking.SweepInterval.String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			close(done)
			return nil
		},
	})
}

func runSweep(sweep commands.SweepUseCase) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := sweep.SweepExpiredHolds(ctx)
	if err != nil {
		slog.Error("expiry sweep failed", "error", err.Error())
		return
	}
	if result.ExpiredHolds > 0 || result.PurgedKeys > 0 {
		slog.Info("expiry sweep completed",
			"expired_holds", result.ExpiredHolds,
			"purged_keys", result.PurgedKeys)
	}
}
