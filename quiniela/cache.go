package quiniela

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const key = "quiniela"

// Cache serves the most recent fetch from a Source until the revalidation interval expires. A
// request that arrives after expiry triggers a new fetch, shared by any concurrent requests.
type Cache struct {
	source     Source
	cache      *gocache.Cache
	group      singleflight.Group
	revalidate time.Duration
	timeout    time.Duration
	log        *zap.Logger
}

func NewCache(source Source, revalidate, timeout time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}

	return &Cache{
		source:     source,
		cache:      gocache.New(revalidate, 2*revalidate),
		revalidate: revalidate,
		timeout:    timeout,
		log:        log,
	}
}

func (c *Cache) Fetch(ctx context.Context) Data {
	if v, ok := c.cache.Get(key); ok {
		return v.(Data)
	}

	v, _, shared := c.group.Do(key, func() (any, error) {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}

		// the fetch outlives the request that triggered it
		fctx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc

			fctx, cancel = context.WithTimeout(fctx, c.timeout)
			defer cancel()
		}

		data := c.source.Fetch(fctx)

		c.cache.Set(key, data, c.revalidate)
		c.log.Info("revalidated quiniela",
			zap.Int("predictions", len(data.Predictions)),
			zap.Int("statistics", len(data.Statistics)),
			zap.Bool("failed", data.Failed),
			zap.Duration("revalidate", c.revalidate))

		return data, nil
	})

	if shared {
		c.log.Debug("shared quiniela fetch")
	}

	return v.(Data)
}

// Flush discards the cached data.
func (c *Cache) Flush() {
	c.cache.Flush()
}
