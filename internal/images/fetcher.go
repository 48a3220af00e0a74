package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"rockbot/internal/providers"
	"rockbot/internal/structures"
	"time"
)

var ErrImageFetchFailed = errors.New("image fetch failed")

const (
	defaultTimeout = 10 * time.Second
	maxImageSize   = 25 << 20
)

// FetchError carries the HTTP status of a failed download. Status is 0 when
// no response was received.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image download failed, status %d: %s", e.Status, e.Err)
	}
	return fmt.Sprintf("image download failed, status %d", e.Status)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrImageFetchFailed, e.Err}
	}
	return []error{ErrImageFetchFailed}
}

type FetcherInterface interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Fetcher downloads rock images once and serves repeats from the cache.
type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     providers.CacheProviderInterface
	logger    providers.Logger
}

func NewFetcher(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger) FetcherInterface {
	timeout := conf.Images.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: conf.Images.UserAgent,
		cache:     cache,
		logger:    logger,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f.cache.Get(url); ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warnf(providers.TypeGame, "Image %s unreachable: %s", url, err)
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warnf(providers.TypeGame, "Image %s returned status %d", url, resp.StatusCode)
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: err}
	}

	f.cache.Set(url, data)
	return data, nil
}
