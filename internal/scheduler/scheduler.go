// Package scheduler runs the storefront's periodic jobs: the morning alert
// digest and the idle cart sweep.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/config"
	"github.com/dogarmed/storefront/internal/service/alerts"
	"github.com/dogarmed/storefront/internal/service/cart"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	alertsSvc *alerts.Service
	cartStore *cart.Store
	cfg       config.DigestConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. Jobs run in the configured
// timezone; an unknown timezone falls back to local time.
func NewScheduler(cfg config.DigestConfig, alertsSvc *alerts.Service, cartStore *cart.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		alertsSvc: alertsSvc,
		cartStore: cartStore,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.logAlertDigest); err != nil {
		s.logger.Error("failed to schedule alert digest", zap.Error(err))
	}

	// Idle carts get swept on the hour.
	if _, err := s.cron.AddFunc("@hourly", s.sweepCarts); err != nil {
		s.logger.Error("failed to schedule cart sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) logAlertDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	digest, err := s.alertsSvc.Digest(ctx)
	if err != nil {
		s.logger.Error("failed to build alert digest", zap.Error(err))
		return
	}

	s.logger.Info("alert digest",
		zap.Int("expired", digest.ExpiredCount),
		zap.Int("expiring_day", digest.DayCount),
		zap.Int("expiring_week", digest.WeekCount),
		zap.Int("expiring_month", digest.MonthCount),
		zap.Int("urgent_restocks", digest.UrgentRestocks),
		zap.Int("high_restocks", digest.HighRestocks),
		zap.Int("total_expiring", digest.TotalExpiring),
		zap.Int("total_predicted", digest.TotalPredicted))
}

func (s *Scheduler) sweepCarts() {
	evicted := s.cartStore.Sweep()
	if evicted > 0 {
		s.logger.Info("idle carts swept", zap.Int("evicted", evicted))
	}
}
