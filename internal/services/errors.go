package services

import "errors"

var (
	ErrNoActiveRound = errors.New("no active round in this channel")
	ErrEmptyCatalog  = errors.New("no rocks are loaded")
	ErrNoStats       = errors.New("no stats recorded yet")
	ErrNotEnoughData = errors.New("not enough data for this leaderboard")
)
