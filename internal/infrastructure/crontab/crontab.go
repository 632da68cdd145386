// Package crontab schedules the periodic title backfill.
package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/utils/platformerrors"
)

const (
	// DefaultBackfillInterval is used when the configured interval is not positive.
	DefaultBackfillInterval = 10 // in minutes
	// CronJobTimeout bounds one backfill pass.
	CronJobTimeout = 5 * time.Minute
)

// Backfiller titles conversations that were left untitled.
type Backfiller interface {
	Backfill(ctx context.Context, limit int) (int, error)
}

// Config controls the backfill schedule.
type Config struct {
	Enabled         bool
	IntervalMinutes int
	BatchSize       int
}

// Crontab runs the scheduled jobs.
type Crontab struct {
	ctab       *crontab.Crontab
	backfiller Backfiller
	cfg        Config
	log        zerolog.Logger
}

// NewCrontab creates the scheduler.
func NewCrontab(backfiller Backfiller, cfg Config, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:       crontab.New(),
		backfiller: backfiller,
		cfg:        cfg,
		log:        log.With().Str("component", "crontab").Logger(),
	}
}

// Run registers the jobs and blocks until ctx ends.
func (c *Crontab) Run(ctx context.Context) error {
	defer c.ctab.Shutdown()

	if !c.cfg.Enabled {
		<-ctx.Done()
		return nil
	}

	interval := c.cfg.IntervalMinutes
	if interval <= 0 {
		interval = DefaultBackfillInterval
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", interval)
	if err := c.ctab.AddJob(cronExpr, func() {
		jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), CronJobTimeout)
		defer cancel()
		c.RunBackfill(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add title backfill job")
	}
	c.log.Info().Int("interval_minutes", interval).Msg("title backfill scheduled")

	<-ctx.Done()
	return nil
}

// RunBackfill runs one backfill pass and logs the outcome.
func (c *Crontab) RunBackfill(ctx context.Context) {
	titled, err := c.backfiller.Backfill(ctx, c.cfg.BatchSize)
	if err != nil {
		c.log.Warn().Err(err).Msg("title backfill failed")
		return
	}
	if titled > 0 {
		c.log.Info().Int("titled", titled).Msg("title backfill completed")
	}
}
