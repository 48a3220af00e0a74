package testutil

import (
	"context"
	"fmt"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any formatted message at level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level && strings.Contains(fmt.Sprintf(l.Format, l.Args...), substr) {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu           sync.Mutex
	Guesses      map[bool]int
	Rounds       map[string]int
	CatalogSize  int
	Persistences int
	CacheHits    int
	CacheMisses  int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}
func (m *MockMetrics) IncGuesses(correct bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Guesses == nil {
		m.Guesses = make(map[bool]int)
	}
	m.Guesses[correct]++
}
func (m *MockMetrics) IncRounds(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Rounds == nil {
		m.Rounds = make(map[string]int)
	}
	m.Rounds[event]++
}
func (m *MockMetrics) SetCatalogSize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogSize = count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockFeed implements catalog.FeedSource.
type MockFeed struct {
	mu      sync.Mutex
	Entries []models.RockEntry
	Err     error
	Calls   int
}

func (m *MockFeed) Fetch(_ context.Context) ([]models.RockEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entries, nil
}

// MockStatsStore implements interfaces.StatsStoreInterface in memory.
type MockStatsStore struct {
	mu      sync.Mutex
	Records []models.UserRecord
	LoadErr error
	SaveErr error
	Saves   int
}

func (m *MockStatsStore) Load(_ context.Context) ([]models.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]models.UserRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MockStatsStore) Save(_ context.Context, records []models.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Records = make([]models.UserRecord, len(records))
	copy(m.Records, records)
	return nil
}

func (m *MockStatsStore) Close() {}

// Snapshot returns the last saved records.
func (m *MockStatsStore) Snapshot() []models.UserRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.UserRecord, len(m.Records))
	copy(out, m.Records)
	return out
}
