package models

import (
	"time"

	"github.com/google/uuid"
)

// RoundState is the active question of one channel. Entry is a value copy, so a
// catalog reload never changes a round in flight.
type RoundState struct {
	ID        uuid.UUID
	Entry     RockEntry
	Image     string
	StartedAt time.Time
}

func NewRoundState(entry RockEntry, image string) *RoundState {
	return &RoundState{
		ID:        uuid.New(),
		Entry:     entry,
		Image:     image,
		StartedAt: time.Now(),
	}
}
