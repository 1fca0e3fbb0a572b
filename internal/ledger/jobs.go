package ledger

import (
	"context"
	"log/slog"
	"time"

	"stagepass/pkg/logger"
)

// Janitor sweeps pending holds whose booking never reached confirmation.
// Crashed commits leave such rows behind; expiring them returns the seats
// to the pool.
type Janitor struct {
	service  Service
	interval time.Duration
	holdTTL  time.Duration
	log      *logger.Logger
}

func NewJanitor(service Service, interval, holdTTL time.Duration) *Janitor {
	return &Janitor{
		service:  service,
		interval: interval,
		holdTTL:  holdTTL,
		log:      logger.GetDefault(),
	}
}

// Start runs the sweep loop until the context is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				expired, err := j.service.ExpireStale(ctx, j.holdTTL)
				if err != nil {
					j.log.WithError(err).Warn("stale hold sweep failed")
					continue
				}
				if expired > 0 {
					j.log.Info("expired stale seat holds", slog.Int64("count", expired))
				}
			}
		}
	}()
}
