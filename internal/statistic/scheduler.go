package statistic

import (
	"context"
	"errors"
	"fmt"
	"rockbot/internal/catalog"
	"rockbot/internal/providers"
	"rockbot/internal/services"
	"rockbot/internal/statistic/interfaces"
	"rockbot/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	stats   services.StatsServiceInterface
	catalog catalog.CatalogInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

// Init schedules the periodic catalog reload. A zero reloadInterval leaves
// reloads to the owner command.
func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Catalog.ReloadInterval

	if interval > 0 {
		s.cron.AddFunc(gron.Every(interval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			count, err := s.catalog.Reload(context.Background())
			if err != nil {
				s.logger.Warnf(providers.TypeFeed, "Scheduled reload failed: %s", err)
				return
			}
			s.logger.Infof(providers.TypeFeed, "Scheduled reload done, %d rocks active", count)
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads persisted stats and performs the startup catalog load.
// Malformed stats are discarded and the bot starts with an empty mapping.
// Any other load failure is returned before the catalog loads: starting
// without the stored users would overwrite them on the first answer.
func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx := context.Background()
	if err := s.stats.Restore(ctx); err != nil {
		if !errors.Is(err, ErrMalformedPersistedStats) {
			return fmt.Errorf("unable to load stats: %w", err)
		}
		s.logger.Warnf(providers.TypeApp, "Persisted stats are malformed, starting empty: %s", err)
	}

	count, err := s.catalog.Reload(ctx)
	if err != nil {
		s.logger.Warnf(providers.TypeFeed, "Startup catalog load failed, %d rocks active", count)
	} else {
		s.logger.Infof(providers.TypeFeed, "Active rocks in dataset: %d", count)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting stats...")
	err := s.stats.Persist(context.Background())
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting stats: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, stats services.StatsServiceInterface, rocks catalog.CatalogInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		stats:   stats,
		catalog: rocks,
	}
}
