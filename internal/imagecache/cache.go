// Package imagecache caches downloaded item images by their exact URL string.
//
// The cache is unbounded: entries live until Clear is called. Failed
// downloads are never cached, so a later call for the same key retries.
// Concurrent requests for the same uncached key are coalesced into a single
// download and every caller observes its result.
package imagecache

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Downloader fetches raw image bytes, returning nil when no image is
// available for the URL.
type Downloader interface {
	DownloadImage(ctx context.Context, url string) []byte
}

// Cache is a shared URL-to-bytes image cache with per-key single-flight
// download coalescing. Stored bytes are read-only; callers must not mutate
// them.
type Cache struct {
	downloader Downloader
	lg         *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates an empty Cache backed by the given downloader.
func New(downloader Downloader, lg *zap.Logger) *Cache {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Cache{
		downloader: downloader,
		lg:         lg,
		entries:    make(map[string][]byte),
	}
}

// GetOrFetch returns the cached image for url, downloading and storing it on
// a miss. It returns nil when the download fails; the failure is not cached.
//
// The download runs under the context of the first caller for a given key;
// coalesced callers share its outcome even if their own contexts differ.
func (c *Cache) GetOrFetch(ctx context.Context, url string) []byte {
	c.mu.RLock()
	data, ok := c.entries[url]
	c.mu.RUnlock()
	if ok {
		return data
	}

	v, _, shared := c.group.Do(url, func() (any, error) {
		// A previous flight may have stored the entry between our miss and
		// this call.
		c.mu.RLock()
		data, ok := c.entries[url]
		c.mu.RUnlock()
		if ok {
			return data, nil
		}

		data = c.downloader.DownloadImage(ctx, url)
		if data == nil {
			return nil, nil
		}

		c.mu.Lock()
		c.entries[url] = data
		c.mu.Unlock()
		return data, nil
	})
	if shared {
		c.lg.Debug("coalesced image download", zap.String("url", url))
	}
	if v == nil {
		return nil
	}
	return v.([]byte)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear evicts every entry. This is the cache's only eviction mechanism.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
}
