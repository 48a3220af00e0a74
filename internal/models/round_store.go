package models

import (
	"sync"

	"go.uber.org/atomic"
)

type channelSlot struct {
	mu    sync.Mutex
	state *RoundState
}

// RoundStore keeps one RoundState per channel. Every mutation of a channel runs
// under that channel's own lock; different channels never contend.
type RoundStore struct {
	mu     sync.RWMutex
	slots  map[string]*channelSlot
	active *atomic.Int64
}

func NewRoundStore() *RoundStore {
	return &RoundStore{
		slots:  make(map[string]*channelSlot),
		active: atomic.NewInt64(0),
	}
}

func (rs *RoundStore) slot(channel string) *channelSlot {
	// Fast path: slot already exists (read lock only)
	rs.mu.RLock()
	s, ok := rs.slots[channel]
	rs.mu.RUnlock()
	if ok {
		return s
	}

	// Slow path: write lock with double-check
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if s, ok = rs.slots[channel]; ok {
		return s
	}
	s = &channelSlot{}
	rs.slots[channel] = s
	return s
}

// Update runs fn while holding the channel lock. fn gets the current state
// (nil means no round) and returns the next one (nil ends the round). When fn
// returns an error the stored state is left untouched.
func (rs *RoundStore) Update(channel string, fn func(cur *RoundState) (*RoundState, error)) error {
	s := rs.slot(channel)
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return err
	}

	switch {
	case s.state == nil && next != nil:
		rs.active.Inc()
	case s.state != nil && next == nil:
		rs.active.Dec()
	}
	s.state = next
	return nil
}

// Get returns a copy of the channel's round.
func (rs *RoundStore) Get(channel string) (RoundState, bool) {
	rs.mu.RLock()
	s, ok := rs.slots[channel]
	rs.mu.RUnlock()
	if !ok {
		return RoundState{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return RoundState{}, false
	}
	return *s.state, true
}

// Active is the number of channels with a running round.
func (rs *RoundStore) Active() int {
	return int(rs.active.Load())
}
