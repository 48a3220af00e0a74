package services

import (
	"cmp"
	"context"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"rockbot/internal/statistic/interfaces"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	LeaderboardCorrect  = "correct"
	LeaderboardAccuracy = "acc"
	LeaderboardStreak   = "streak"

	DefaultLeaderboardLimit = 10
	MinAccuracyAttempts     = 10
)

type StatsServiceInterface interface {
	Record(ctx context.Context, userID string, correct bool) models.UserStats
	Get(userID string) (models.UserStats, bool)
	Rank(mode string, limit int) ([]models.LeaderboardRow, error)
	Restore(ctx context.Context) error
	Persist(ctx context.Context) error
	Len() int
}

// StatsService owns the per-user counters and writes the whole mapping
// through to the store after every change.
type StatsService struct {
	users     *models.UserStatsStore
	store     interfaces.StatsStoreInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	persistMu sync.Mutex
}

func NewStatsService(store interfaces.StatsStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) StatsServiceInterface {
	return &StatsService{
		users:   models.NewUserStatsStore(),
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Record applies one answer and persists. A failed save is logged; the
// in-memory counters stay updated and the next save carries them.
func (s *StatsService) Record(ctx context.Context, userID string, correct bool) models.UserStats {
	stats := s.users.Record(userID, correct)
	if err := s.Persist(ctx); err != nil {
		s.logger.Errorf(providers.TypeGame, "Error while persisting stats: %s", err)
	}
	return stats
}

func (s *StatsService) Get(userID string) (models.UserStats, bool) {
	return s.users.Get(userID)
}

func (s *StatsService) Len() int {
	return s.users.Len()
}

// Rank orders users for the given mode and truncates to limit. Unknown modes
// rank by correct answers. Ties keep first-seen order.
func (s *StatsService) Rank(mode string, limit int) ([]models.LeaderboardRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	records := s.users.Snapshot()
	if len(records) == 0 {
		return nil, ErrNoStats
	}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case LeaderboardAccuracy:
		records = slices.DeleteFunc(records, func(r models.UserRecord) bool {
			return r.Total < MinAccuracyAttempts
		})
		if len(records) == 0 {
			return nil, ErrNotEnoughData
		}
		slices.SortStableFunc(records, func(a, b models.UserRecord) int {
			return cmp.Or(
				cmp.Compare(b.Accuracy(), a.Accuracy()),
				cmp.Compare(b.Total, a.Total),
			)
		})
	case LeaderboardStreak:
		slices.SortStableFunc(records, func(a, b models.UserRecord) int {
			return cmp.Or(
				cmp.Compare(b.MaxStreak, a.MaxStreak),
				cmp.Compare(b.Correct, a.Correct),
			)
		})
	default:
		slices.SortStableFunc(records, func(a, b models.UserRecord) int {
			return cmp.Or(
				cmp.Compare(b.Correct, a.Correct),
				cmp.Compare(b.Accuracy(), a.Accuracy()),
				cmp.Compare(b.Total, a.Total),
			)
		})
	}

	records = records[:min(limit, len(records))]
	rows := make([]models.LeaderboardRow, len(records))
	for i, r := range records {
		rows[i] = models.LeaderboardRow{
			Rank:     i + 1,
			UserID:   r.UserID,
			Stats:    r.UserStats,
			Accuracy: r.Accuracy(),
		}
	}
	return rows, nil
}

// Restore replaces the in-memory counters with the store's contents.
func (s *StatsService) Restore(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.users.PutData(records)
	s.logger.Infof(providers.TypeApp, "Loaded stats for %d users", len(records))
	return nil
}

func (s *StatsService) Persist(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	start := time.Now()
	err := s.store.Save(ctx, s.users.Snapshot())
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return err
}
