package statistic

import (
	"context"
	"errors"
	"fmt"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"rockbot/internal/statistic/interfaces"
	"rockbot/internal/structures"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the stats envelope under a single redis key.
type RedisStore struct {
	client     *redis.Client
	key        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewRedisClient(conf *structures.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
}

func NewRedisStore(client *redis.Client, conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *RedisStore {
	return &RedisStore{
		client:     client,
		key:        conf.Redis.Key,
		compressor: compressor,
		logger:     logger,
	}
}

func (r *RedisStore) Save(ctx context.Context, records []models.UserRecord) error {
	jsonData, err := EncodeStats(records)
	if err != nil {
		return err
	}
	data, err := r.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisStore) Load(ctx context.Context) ([]models.UserRecord, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	decompressed, err := r.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPersistedStats, err)
	}
	records, err := DecodeStats(decompressed)
	if err != nil {
		return nil, err
	}
	r.logger.Debugf(providers.TypeApp, "Read %d user records from redis key %s", len(records), r.key)
	return records, nil
}

func (r *RedisStore) Close() {
	_ = r.client.Close()
	r.compressor.Close()
}

// NewStatsStore selects the backend named by persistence.driver.
func NewStatsStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.StatsStoreInterface {
	if conf.Persistence.Driver == "redis" {
		logger.Infof(providers.TypeApp, "Stats stored in redis at %s", conf.Redis.Addr)
		return NewRedisStore(NewRedisClient(conf), conf, compressor, logger)
	}
	logger.Infof(providers.TypeApp, "Stats stored in %s", conf.Persistence.FilePath)
	return NewFileManager(conf, compressor, logger)
}
