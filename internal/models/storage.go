package models

const StatsStorageVersion = 1

// StatsStorage is the persisted stats envelope. Users keeps insertion order,
// which is the final leaderboard tiebreak.
type StatsStorage struct {
	Version int          `json:"version"`
	Users   []UserRecord `json:"users"`
}
