// Package assets fetches the letterhead images once and keeps them for later reports.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxAssetBytes bounds a single image download.
const maxAssetBytes = 10 << 20

// SharedStore is an optional second tier shared between processes.
type SharedStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options configures a Cache.
type Options struct {
	BaseURL   string
	LogoPath  string
	CoverPath string
	Client    *http.Client
	Shared    SharedStore
	SharedTTL time.Duration
}

// Cache is a get-or-fetch cache of binary assets keyed by path.
// Failed fetches are not remembered, so the next report retries.
type Cache struct {
	opts Options

	mu      sync.Mutex
	entries map[string][]byte
}

// New creates a Cache.
func New(opts Options) *Cache {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Cache{opts: opts, entries: map[string][]byte{}}
}

// Logo returns the logo image or nil.
func (c *Cache) Logo(ctx context.Context) []byte {
	return c.Get(ctx, c.opts.LogoPath)
}

// Cover returns the cover photograph or nil.
func (c *Cache) Cover(ctx context.Context) []byte {
	return c.Get(ctx, c.opts.CoverPath)
}

// Get returns the asset at path, fetching it on first use. It returns nil
// when the asset cannot be fetched.
func (c *Cache) Get(ctx context.Context, path string) []byte {
	if path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.entries[path]; ok {
		return data
	}

	if c.opts.Shared != nil {
		data, ok, err := c.opts.Shared.Get(ctx, sharedKey(path))
		if err != nil {
			zap.L().Warn("Shared asset cache read failed", zap.String("path", path), zap.Error(err))
		} else if ok && len(data) > 0 {
			c.entries[path] = data
			return data
		}
	}

	data, err := c.fetch(ctx, path)
	if err != nil {
		zap.L().Warn("Failed to fetch report asset",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	c.entries[path] = data

	if c.opts.Shared != nil {
		if err := c.opts.Shared.Set(ctx, sharedKey(path), data, c.opts.SharedTTL); err != nil {
			zap.L().Warn("Shared asset cache write failed", zap.String("path", path), zap.Error(err))
		}
	}
	return data
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) fetch(ctx context.Context, path string) ([]byte, error) {
	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = strings.TrimRight(c.opts.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.opts.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("GET %s: empty body", url)
	}
	return data, nil
}

func sharedKey(path string) string {
	return "assets:" + path
}
