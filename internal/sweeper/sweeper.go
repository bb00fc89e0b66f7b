package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/internal/models"
)

// Sweeper deactivates active events whose date has passed. It runs on a
// fixed wall-clock interval, independent of request traffic.
type Sweeper struct {
	db       *gorm.DB
	interval time.Duration
	log      zerolog.Logger
}

func New(db *gorm.DB, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{db: db, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until the context is
// canceled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	updated, err := s.SweepOnce(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("event sweep failed")
		return
	}
	if updated > 0 {
		s.log.Info().Int64("deactivated", updated).Msg("expired events deactivated")
	}
}

// SweepOnce transitions expired active events to deactivated in a single
// conditional UPDATE, so it is idempotent and safe to run concurrently
// with normal CRUD.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("date < ? AND state = ?", time.Now(), models.StateActive).
		Update("state", models.StateDeactivated)
	return result.RowsAffected, result.Error
}
