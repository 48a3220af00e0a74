package models

type UserStats struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Streak    int `json:"streak"`
	MaxStreak int `json:"max_streak"`
}

// Record applies one answered round.
func (s *UserStats) Record(correct bool) {
	s.Total++
	if !correct {
		s.Streak = 0
		return
	}
	s.Correct++
	s.Streak++
	if s.Streak > s.MaxStreak {
		s.MaxStreak = s.Streak
	}
}

// Accuracy is Correct/Total, or 0 without attempts.
func (s UserStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Sanitize repairs counters read from external storage so that
// 0 <= Correct <= Total and Streak <= MaxStreak.
func (s *UserStats) Sanitize() {
	s.Total = max(s.Total, 0)
	s.Correct = max(s.Correct, 0)
	s.Streak = max(s.Streak, 0)
	s.MaxStreak = max(s.MaxStreak, 0)
	if s.Correct > s.Total {
		s.Total = s.Correct
	}
	if s.Streak > s.MaxStreak {
		s.MaxStreak = s.Streak
	}
}

// UserRecord pairs stats with their owner; slices of it keep insertion order.
type UserRecord struct {
	UserID string `json:"user_id"`
	UserStats
}

// LeaderboardRow is one ranked line of a leaderboard.
type LeaderboardRow struct {
	Rank     int       `json:"rank"`
	UserID   string    `json:"user_id"`
	Stats    UserStats `json:"stats"`
	Accuracy float64   `json:"accuracy"`
}
