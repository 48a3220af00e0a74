package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"rockbot/internal/structures"
	"time"
)

var ErrFeedUnavailable = errors.New("feed unavailable")

const (
	defaultFeedTimeout = 10 * time.Second
	maxFeedSize        = 10 << 20
)

type FeedSource interface {
	Fetch(ctx context.Context) ([]models.RockEntry, error)
}

// HTTPFeed downloads the rock sheet export over HTTP.
type HTTPFeed struct {
	url     string
	format  string
	timeout time.Duration
	client  *http.Client
	logger  providers.Logger
}

func NewHTTPFeed(conf *structures.Config, logger providers.Logger) FeedSource {
	timeout := conf.Catalog.Timeout
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	return &HTTPFeed{
		url:     conf.Catalog.FeedURL,
		format:  conf.Catalog.Format,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (f *HTTPFeed) Fetch(ctx context.Context) ([]models.RockEntry, error) {
	if f.url == "" {
		return nil, fmt.Errorf("%w: feed url not configured", ErrFeedUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	if f.format == "json" {
		return ParseJSON(data, f.logger)
	}
	return ParseCSV(data, f.logger)
}
