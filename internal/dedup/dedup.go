// Package dedup remembers listing URLs across runs so a rerun can skip
// detail pages it already visited.
package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entries older than this are dropped on load; listings this old are
// usually closed and worth a fresh visit if they show up again.
const DefaultTTL = 30 * 24 * time.Hour

const cacheFile = "seen_listings.json"

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// SeenCache is a URL set persisted as JSON under a cache directory.
type SeenCache struct {
	mu       sync.Mutex
	filePath string
	ttl      time.Duration
	now      func() time.Time
	seen     map[string]int64
}

// NewSeenCache creates or loads the cache in cacheDir.
func NewSeenCache(cacheDir string) *SeenCache {
	return newSeenCache(cacheDir, DefaultTTL, time.Now)
}

func newSeenCache(cacheDir string, ttl time.Duration, now func() time.Time) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &SeenCache{
		filePath: filepath.Join(cacheDir, cacheFile),
		ttl:      ttl,
		now:      now,
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen reports whether url was recorded by this or an earlier run.
func (c *SeenCache) IsSeen(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.seen[url]
	return exists
}

// Add records urls and saves the file when anything new was added.
func (c *SeenCache) Add(urls ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UnixMilli()
	changed := false
	for _, url := range urls {
		if _, exists := c.seen[url]; !exists {
			c.seen[url] = ts
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *SeenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

func (c *SeenCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", cacheFile, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", cacheFile, err)
		return
	}

	cutoff := c.now().Add(-c.ttl).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen listings (%d expired)", loaded, len(entries)-loaded)
}

// save must be called with mu held.
func (c *SeenCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for url, ts := range c.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen listings: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write %s: %v", cacheFile, err)
	}
}
