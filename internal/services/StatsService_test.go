package services

import (
	"context"
	"errors"
	"fmt"
	"rockbot/internal/models"
	"rockbot/internal/testutil"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStatsService() (*StatsService, *testutil.MockStatsStore, *testutil.MockLogger) {
	store := &testutil.MockStatsStore{}
	logger := &testutil.MockLogger{}
	svc := NewStatsService(store, logger, &testutil.MockMetrics{}).(*StatsService)
	return svc, store, logger
}

func seed(svc *StatsService, records ...models.UserRecord) {
	svc.users.PutData(records)
}

func rec(id string, total, correct, maxStreak int) models.UserRecord {
	return models.UserRecord{UserID: id, UserStats: models.UserStats{Total: total, Correct: correct, MaxStreak: maxStreak}}
}

func rowIDs(rows []models.LeaderboardRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.UserID
	}
	return ids
}

func TestStatsService_RecordSequence(t *testing.T) {
	svc, store, _ := newTestStatsService()
	ctx := context.Background()

	for _, correct := range []bool{true, true, false, true} {
		svc.Record(ctx, "u1", correct)
	}

	got, ok := svc.Get("u1")
	require.True(t, ok)
	assert.Equal(t, models.UserStats{Total: 4, Correct: 3, Streak: 1, MaxStreak: 2}, got)

	assert.Equal(t, 4, store.Saves, "every record is written through")
	saved := store.Snapshot()
	require.Len(t, saved, 1)
	assert.Equal(t, got, saved[0].UserStats)
}

func TestStatsService_RecordSaveErrorIsLogged(t *testing.T) {
	svc, store, logger := newTestStatsService()
	store.SaveErr = errors.New("disk full")

	stats := svc.Record(context.Background(), "u1", true)
	assert.Equal(t, 1, stats.Correct)
	assert.True(t, logger.Contains("error", "disk full"))

	got, _ := svc.Get("u1")
	assert.Equal(t, 1, got.Total)
}

func TestStatsService_GetUnknown(t *testing.T) {
	svc, _, _ := newTestStatsService()
	_, ok := svc.Get("nobody")
	assert.False(t, ok)
}

func TestStatsService_RankNoStats(t *testing.T) {
	svc, _, _ := newTestStatsService()
	for _, mode := range []string{"", LeaderboardAccuracy, LeaderboardStreak} {
		_, err := svc.Rank(mode, 10)
		assert.ErrorIs(t, err, ErrNoStats)
	}
}

func TestStatsService_RankCorrect(t *testing.T) {
	svc, _, _ := newTestStatsService()
	seed(svc,
		rec("a", 10, 5, 1),
		rec("b", 6, 5, 3),
		rec("c", 20, 8, 2),
		rec("d", 12, 5, 0),
		rec("e", 10, 5, 9),
	)

	rows, err := svc.Rank("", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a", "e", "d"}, rowIDs(rows))
	assert.Equal(t, 1, rows[0].Rank)
	assert.InDelta(t, 0.4, rows[0].Accuracy, 1e-9)
}

func TestStatsService_RankAccuracyMinimumAttempts(t *testing.T) {
	svc, _, _ := newTestStatsService()
	seed(svc,
		rec("perfect-but-few", 5, 5, 5),
		rec("ten", 10, 6, 2),
		rec("twenty", 20, 12, 2),
		rec("best", 10, 9, 4),
	)

	rows, err := svc.Rank("ACC", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"best", "twenty", "ten"}, rowIDs(rows))
}

func TestStatsService_RankAccuracyNotEnoughData(t *testing.T) {
	svc, _, _ := newTestStatsService()
	seed(svc, rec("a", 5, 5, 5), rec("b", 9, 1, 1))

	_, err := svc.Rank(LeaderboardAccuracy, 10)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestStatsService_RankStreak(t *testing.T) {
	svc, _, _ := newTestStatsService()
	seed(svc,
		rec("a", 1, 1, 1),
		rec("b", 30, 20, 4),
		rec("c", 30, 25, 4),
		rec("d", 2, 0, 0),
	)

	rows, err := svc.Rank(LeaderboardStreak, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a", "d"}, rowIDs(rows))
}

func TestStatsService_RankTiesKeepInsertionOrder(t *testing.T) {
	svc, _, _ := newTestStatsService()
	seed(svc, rec("z", 4, 2, 1), rec("y", 4, 2, 1), rec("x", 4, 2, 1))

	for _, mode := range []string{LeaderboardCorrect, LeaderboardStreak} {
		rows, err := svc.Rank(mode, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "y", "x"}, rowIDs(rows), mode)
	}
}

func TestStatsService_RankLimit(t *testing.T) {
	svc, _, _ := newTestStatsService()
	var records []models.UserRecord
	for i := 0; i < 15; i++ {
		records = append(records, rec(fmt.Sprintf("u%d", i), 15, i, 0))
	}
	seed(svc, records...)

	rows, err := svc.Rank("", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"u14", "u13", "u12"}, rowIDs(rows))

	rows, err = svc.Rank("", 0)
	require.NoError(t, err)
	assert.Len(t, rows, DefaultLeaderboardLimit)
}

func TestStatsService_Restore(t *testing.T) {
	svc, store, _ := newTestStatsService()
	store.Records = []models.UserRecord{rec("old", 3, 2, 2)}

	require.NoError(t, svc.Restore(context.Background()))
	assert.Equal(t, 1, svc.Len())
	got, ok := svc.Get("old")
	require.True(t, ok)
	assert.Equal(t, 2, got.Correct)
}

func TestStatsService_RestoreError(t *testing.T) {
	svc, store, _ := newTestStatsService()
	store.LoadErr = errors.New("boom")
	assert.Error(t, svc.Restore(context.Background()))
	assert.Equal(t, 0, svc.Len())
}

func TestStatsService_ConcurrentRecords(t *testing.T) {
	svc, store, _ := newTestStatsService()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc.Record(context.Background(), fmt.Sprintf("u%d", i%5), i%2 == 0)
		}(i)
	}
	wg.Wait()

	total := 0
	for _, r := range store.Snapshot() {
		total += r.Total
	}
	assert.Equal(t, 50, total, "last save holds every answer")
}
