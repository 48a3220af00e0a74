package statistic

import (
	"bytes"
	"errors"
	"rockbot/internal/models"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var ErrMalformedPersistedStats = errors.New("malformed persisted stats")

// EncodeStats writes the versioned envelope.
func EncodeStats(records []models.UserRecord) ([]byte, error) {
	if records == nil {
		records = []models.UserRecord{}
	}
	return json.Marshal(models.StatsStorage{
		Version: models.StatsStorageVersion,
		Users:   records,
	})
}

// DecodeStats accepts the versioned envelope or the older flat
// {"<user id>": {...}} object. Users keep document order in both shapes.
// Empty input is an empty store.
func DecodeStats(data []byte) ([]models.UserRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedPersistedStats
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrMalformedPersistedStats
	}

	if users := root.Get("users"); root.Get("version").Exists() && users.IsArray() {
		return decodeEnvelope(users), nil
	}
	return decodeFlat(root), nil
}

func decodeEnvelope(users gjson.Result) []models.UserRecord {
	var records []models.UserRecord
	users.ForEach(func(_, item gjson.Result) bool {
		id := item.Get("user_id").String()
		if !item.IsObject() || id == "" {
			return true
		}
		records = append(records, models.UserRecord{UserID: id, UserStats: decodeUserStats(item)})
		return true
	})
	return records
}

func decodeFlat(root gjson.Result) []models.UserRecord {
	var records []models.UserRecord
	root.ForEach(func(key, item gjson.Result) bool {
		if !item.IsObject() || key.String() == "" {
			return true
		}
		records = append(records, models.UserRecord{UserID: key.String(), UserStats: decodeUserStats(item)})
		return true
	})
	return records
}

func decodeUserStats(item gjson.Result) models.UserStats {
	s := models.UserStats{
		Total:     int(item.Get("total").Int()),
		Correct:   int(item.Get("correct").Int()),
		Streak:    int(item.Get("streak").Int()),
		MaxStreak: int(item.Get("max_streak").Int()),
	}
	s.Sanitize()
	return s
}
