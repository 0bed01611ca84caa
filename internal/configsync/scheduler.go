package configsync

import (
	"abconfig/internal/configsync/interfaces"
	"abconfig/internal/providers"
	"abconfig/internal/structures"
	"context"
	"sync"

	"github.com/roylee0704/gron"
)

// SyncTrigger re-runs the sync across all registered configs.
type SyncTrigger interface {
	SyncAll(ctx context.Context)
}

// Scheduler periodically re-syncs all configs from the server.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	trigger SyncTrigger
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func NewScheduler(conf *structures.Config, trigger SyncTrigger, logger providers.Logger) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  conf,
		logger:  logger,
		trigger: trigger,
	}
}

func (s *Scheduler) Init() {
	interval := s.config.Sync.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeSync, "Periodic sync disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.logger.Infof(providers.TypeSync, "Periodic sync...")
		s.trigger.SyncAll(context.Background())
	})
	s.cron.Start()

	s.logger.Infof(providers.TypeSync, "Periodic sync every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
