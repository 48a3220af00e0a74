package models

import "sync"

type userSlot struct {
	mu    sync.Mutex
	stats UserStats
}

// UserStatsStore holds per-user counters with a lock per user and remembers
// the order in which users first appeared.
type UserStatsStore struct {
	mu    sync.RWMutex
	users map[string]*userSlot
	order []string
}

func NewUserStatsStore() *UserStatsStore {
	return &UserStatsStore{
		users: make(map[string]*userSlot),
	}
}

func (us *UserStatsStore) slot(userID string) *userSlot {
	us.mu.RLock()
	s, ok := us.users[userID]
	us.mu.RUnlock()
	if ok {
		return s
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	if s, ok = us.users[userID]; ok {
		return s
	}
	s = &userSlot{}
	us.users[userID] = s
	us.order = append(us.order, userID)
	return s
}

// Record creates the user on first use and applies one answer. It returns the
// updated counters.
func (us *UserStatsStore) Record(userID string, correct bool) UserStats {
	s := us.slot(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Record(correct)
	return s.stats
}

func (us *UserStatsStore) Get(userID string) (UserStats, bool) {
	us.mu.RLock()
	s, ok := us.users[userID]
	us.mu.RUnlock()
	if !ok {
		return UserStats{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, true
}

func (us *UserStatsStore) Len() int {
	us.mu.RLock()
	defer us.mu.RUnlock()
	return len(us.order)
}

// Snapshot copies all users in insertion order.
func (us *UserStatsStore) Snapshot() []UserRecord {
	us.mu.RLock()
	order := make([]string, len(us.order))
	copy(order, us.order)
	slots := make([]*userSlot, len(order))
	for i, id := range order {
		slots[i] = us.users[id]
	}
	us.mu.RUnlock()

	records := make([]UserRecord, len(order))
	for i, s := range slots {
		s.mu.Lock()
		records[i] = UserRecord{UserID: order[i], UserStats: s.stats}
		s.mu.Unlock()
	}
	return records
}

// PutData replaces the whole store. Duplicate ids keep their first position
// and last value.
func (us *UserStatsStore) PutData(records []UserRecord) {
	users := make(map[string]*userSlot, len(records))
	order := make([]string, 0, len(records))
	for _, rec := range records {
		if s, ok := users[rec.UserID]; ok {
			s.stats = rec.UserStats
			continue
		}
		users[rec.UserID] = &userSlot{stats: rec.UserStats}
		order = append(order, rec.UserID)
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	us.users = users
	us.order = order
}
