package worker

// reconcile_cron.go
// Background goroutine that periodically re-runs association inference over
// the full product catalog. Write paths recompute synchronously; the cron
// catches anything those paths missed (out-of-band data edits, a write that
// raced a crash) so the map converges back to a consistent state.

import (
	"context"
	"time"

	"shopcat/internal/assoc"
	"shopcat/internal/repository"

	"github.com/rs/zerolog/log"
)

const reconcileTickInterval = 5 * time.Minute

// ReconcileCronConfig holds all dependencies for the reconcile goroutine.
type ReconcileCronConfig struct {
	ProductRepo repository.ProductRepository
	Engine      *assoc.Engine
}

// StartReconcileCron launches a background goroutine that ticks every 5m and
// feeds the current product catalog through the inference engine.
// It respects the context for graceful shutdown.
func StartReconcileCron(ctx context.Context, cfg ReconcileCronConfig) {
	go func() {
		ticker := time.NewTicker(reconcileTickInterval)
		defer ticker.Stop()

		log.Info().Msg("reconcile_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile_cron: shutting down")
				return
			case <-ticker.C:
				reconcile(ctx, cfg)
			}
		}
	}()
}

func reconcile(ctx context.Context, cfg ReconcileCronConfig) {
	products, err := cfg.ProductRepo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile_cron: failed to load products")
		return
	}

	filled := cfg.Engine.Recompute(ctx, products)
	if filled > 0 {
		log.Info().Int("filled", filled).Msg("reconcile_cron: inferred new associations")
	}
}
