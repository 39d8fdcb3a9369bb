package state

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
)

const DefaultSweepSchedule = "@every 15m"

type resetter interface {
	ResetDue(ctx context.Context) (int, error)
}

// ResetSweeper runs the daily reset for users whose local day rolled over
// while they were not using the app.
type ResetSweeper struct {
	service        resetter
	metricsManager *metrics.Manager
	timeout        time.Duration
	cron           *cron.Cron
}

func NewResetSweeper(service resetter, metricsManager *metrics.Manager) *ResetSweeper {
	return &ResetSweeper{
		service:        service,
		metricsManager: metricsManager,
		timeout:        5 * time.Minute,
		cron:           cron.New(),
	}
}

// Start schedules the sweep; schedule is a cron spec, DefaultSweepSchedule when empty.
func (s *ResetSweeper) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return fmt.Errorf("schedule reset sweep [%s]: %w", schedule, err)
	}
	s.cron.Start()
	log.Infof("daily reset sweep scheduled: %s", schedule)
	return nil
}

func (s *ResetSweeper) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reset, err := s.service.ResetDue(ctx)
	if err != nil {
		log.Errorf("daily reset sweep: %s", err)
		return 0
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterDailyResets.Add(float64(reset))
	}
	if reset > 0 {
		log.Infof("daily reset sweep: %d states reset", reset)
	}
	return reset
}

// Stop waits for a running sweep to finish.
func (s *ResetSweeper) Stop() {
	<-s.cron.Stop().Done()
}
