package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenCache_AddAndPersist(t *testing.T) {
	dir := t.TempDir()

	cache := NewSeenCache(dir)
	assert.False(t, cache.IsSeen("https://www.naukri.com/job-listings-1"))

	cache.Add("https://www.naukri.com/job-listings-1", "https://www.naukri.com/job-listings-2")
	assert.True(t, cache.IsSeen("https://www.naukri.com/job-listings-1"))
	assert.Equal(t, 2, cache.Len())

	reloaded := NewSeenCache(dir)
	assert.True(t, reloaded.IsSeen("https://www.naukri.com/job-listings-2"))
	assert.Equal(t, 2, reloaded.Len())
}

func TestSeenCache_ExpiredEntriesDropped(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	entries := []seenEntry{
		{URL: "fresh", Timestamp: now.Add(-24 * time.Hour).UnixMilli()},
		{URL: "stale", Timestamp: now.Add(-31 * 24 * time.Hour).UnixMilli()},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), data, 0644))

	cache := newSeenCache(dir, DefaultTTL, func() time.Time { return now })
	assert.True(t, cache.IsSeen("fresh"))
	assert.False(t, cache.IsSeen("stale"))
}

func TestSeenCache_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), []byte("{oops"), 0644))

	cache := NewSeenCache(dir)
	assert.Equal(t, 0, cache.Len())

	cache.Add("https://www.naukri.com/job-listings-9")
	assert.True(t, NewSeenCache(dir).IsSeen("https://www.naukri.com/job-listings-9"))
}
