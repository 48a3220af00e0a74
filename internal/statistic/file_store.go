package statistic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"rockbot/internal/statistic/interfaces"
	"rockbot/internal/structures"
)

// FileManager keeps the stats envelope in a single file on disk.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		path:       conf.Persistence.FilePath,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Save(_ context.Context, records []models.UserRecord) error {
	jsonData, err := EncodeStats(records)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileManager) Load(_ context.Context) ([]models.UserRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPersistedStats, err)
	}

	records, err := DecodeStats(decompressed)
	if err != nil {
		return nil, err
	}
	f.logger.Debugf(providers.TypeApp, "Read %d user records from %s", len(records), f.path)
	return records, nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
