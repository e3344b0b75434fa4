package sched

import (
	"context"
	"time"

	"hotspot-admin/internal/domain/ports/repository"
	"hotspot-admin/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// ExpiryWorker periodically flips the stored status of lapsed subscribers to
// expired. Activation and listing decide liveness from expires_at directly;
// this reconciliation only keeps reporting queries honest.
type ExpiryWorker struct {
	interval time.Duration
	subs     repository.SubscriberRepository
	log      *zerolog.Logger
}

func NewExpiryWorker(interval time.Duration, subs repository.SubscriberRepository, logger *zerolog.Logger) *ExpiryWorker {
	exprLog := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{
		interval: interval,
		subs:     subs,
		log:      &exprLog,
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.subs.MarkExpired(ctx, repository.NoTX, time.Now().Unix())
			if err != nil {
				w.log.Error().Err(err).Msg("expiry worker error")
			}
			if n > 0 {
				metrics.IncSubscribersExpired(n)
				w.log.Info().Int("count", n).Msg("expired subscribers reconciled")
			}
		}
	}
}
