package interfaces

import (
	"context"
	"rockbot/internal/models"
)

// StatsStoreInterface is the durable home of the user stats mapping.
// Load on an empty store returns no records and no error.
type StatsStoreInterface interface {
	Load(ctx context.Context) ([]models.UserRecord, error)
	Save(ctx context.Context, records []models.UserRecord) error
	Close()
}
