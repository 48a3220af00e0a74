package catalog

import (
	"context"
	"errors"
	"fmt"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"rockbot/internal/structures"
	"sync"

	"go.uber.org/atomic"
)

type CatalogInterface interface {
	Entries() []models.RockEntry
	Len() int
	Reload(ctx context.Context) (int, error)
}

// Catalog is the active rock list. Reload swaps the whole slice; readers keep
// whatever slice they loaded, and entries are never mutated in place.
type Catalog struct {
	entries  *atomic.Pointer[[]models.RockEntry]
	feed     FeedSource
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	reloadMu sync.Mutex
}

func NewCatalog(conf *structures.Config, feed FeedSource, logger providers.Logger, metrics providers.MetricsProviderInterface) CatalogInterface {
	var initial []models.RockEntry
	if conf.Catalog.UseFallback {
		initial = models.FallbackRocks()
	}
	metrics.SetCatalogSize(len(initial))
	return &Catalog{
		entries: atomic.NewPointer(&initial),
		feed:    feed,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Catalog) Entries() []models.RockEntry {
	return *c.entries.Load()
}

func (c *Catalog) Len() int {
	return len(c.Entries())
}

// Reload replaces the catalog with the feed's entries. A failed fetch or an
// empty result keeps the current catalog; the returned count is always the
// size of the catalog in effect afterwards.
func (c *Catalog) Reload(ctx context.Context) (int, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	entries, err := c.feed.Fetch(ctx)
	if err == nil && len(entries) == 0 {
		err = fmt.Errorf("%w: no valid entries", ErrFeedUnavailable)
	}
	if err != nil {
		if !errors.Is(err, ErrFeedUnavailable) {
			err = fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		}
		count := c.Len()
		c.logger.Warnf(providers.TypeFeed, "Catalog reload failed, keeping %d entries: %s", count, err)
		return count, err
	}

	c.entries.Store(&entries)
	c.metrics.SetCatalogSize(len(entries))
	c.logger.Infof(providers.TypeFeed, "Loaded %d rocks from feed", len(entries))
	return len(entries), nil
}
