// Package assets resolves level sources and caches parsed levels.
package assets

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/Faultbox/spline-terrain/internal/logger"
	"github.com/Faultbox/spline-terrain/pkg/formats"
)

const defaultLevelName = "level.json"

// Manager loads levels from local paths or remote sources.
//
// A source naming an existing file is read in place. Anything else is handed
// to go-getter (http, git::, s3:: and so on) and downloaded into the cache
// directory first.
type Manager struct {
	cacheDir string
	cache    *Cache
	log      *zap.Logger
}

// NewManager creates a manager that downloads into cacheDir.
func NewManager(cacheDir string) *Manager {
	return &Manager{
		cacheDir: cacheDir,
		cache:    NewCache(),
		log:      logger.Named("assets"),
	}
}

// Load resolves src and returns the parsed level.
func (m *Manager) Load(ctx context.Context, src string) (*formats.Level, error) {
	if lvl, ok := m.cache.Get(src); ok {
		return lvl, nil
	}

	file := src
	if !isLocalFile(src) {
		fetched, err := m.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		file = fetched
	}

	lvl, err := formats.LoadLevel(file)
	if err != nil {
		return nil, fmt.Errorf("loading level %s: %w", src, err)
	}

	m.cache.Set(src, lvl)
	return lvl, nil
}

// Fetch downloads src into the cache directory and returns the local path.
func (m *Manager) Fetch(ctx context.Context, src string) (string, error) {
	if m.cacheDir == "" {
		return "", fmt.Errorf("fetching %s: no cache directory configured", src)
	}
	if err := os.MkdirAll(m.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working dir: %w", err)
	}

	dst := filepath.Join(m.cacheDir, destName(src))
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}

	m.log.Info("fetching level", zap.String("src", src), zap.String("dst", dst))
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetching %s: %w", src, err)
	}

	return dst, nil
}

// Close drops all cached levels.
func (m *Manager) Close() {
	hits, misses := m.cache.Stats()
	m.log.Debug("closing asset manager", zap.Int("hits", hits), zap.Int("misses", misses))
	m.cache.Clear()
}

// Cache returns the parsed level cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

func isLocalFile(src string) bool {
	info, err := os.Stat(src)
	return err == nil && info.Mode().IsRegular()
}

// destName derives a file name from a source, dropping any forced getter
// prefix and query string.
func destName(src string) string {
	if i := strings.Index(src, "::"); i >= 0 {
		src = src[i+2:]
	}

	p := filepath.ToSlash(src)
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	} else if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}

	name := path.Base(p)
	if name == "." || name == "/" || name == "" || !strings.Contains(name, ".") {
		return defaultLevelName
	}
	return name
}

// Cache is an in-memory cache of parsed levels keyed by source.
type Cache struct {
	data map[string]*formats.Level
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.Level),
	}
}

// Get retrieves a level from the cache.
func (c *Cache) Get(key string) (*formats.Level, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lvl, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return lvl, ok
}

// Set stores a level in the cache.
func (c *Cache) Set(key string, lvl *formats.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = lvl
}

// Len returns the number of cached levels.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.Level)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
