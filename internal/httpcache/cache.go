
// Package httpcache provides an on-disk TTL cache for GET responses and a
// fetch client that consults it before touching the network.
package httpcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry is a cached fetch result.
type Entry struct {
	URL        string
	StatusCode int
	Body       string
	FetchedAt  time.Time
	Elapsed    time.Duration
}

type entryMeta struct {
	URL        string  `json:"url"`
	StatusCode int     `json:"status_code"`
	FetchedAt  float64 `json:"fetched_at"`
	ElapsedSec float64 `json:"elapsed_sec"`
}

// Cache stores one response per URL as a metadata file plus a body file,
// keyed by the sha256 of the URL. Entries older than the TTL are treated as
// absent; stale files are never collected, only overwritten.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// New creates the cache directory if needed. The zero ttl means entries
// expire immediately; callers wanting effectively-forever pass a large TTL.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the wall clock, for tests near TTL boundaries.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) paths(url string) (meta, body string) {
	k := c.key(url)
	return filepath.Join(c.dir, k+".json"), filepath.Join(c.dir, k+".txt")
}

// Get returns the cached entry for url, or ok=false when there is none,
// when it has expired, or when the stored files are unreadable. Corruption
// is deliberately indistinguishable from a miss; the caller re-fetches.
func (c *Cache) Get(url string) (Entry, bool) {
	metaPath, bodyPath := c.paths(url)

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return Entry{}, false
	}
	var m entryMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return Entry{}, false
	}
	fetchedAt := time.Unix(0, int64(m.FetchedAt*float64(time.Second)))
	if c.now().Sub(fetchedAt) > c.ttl {
		return Entry{}, false
	}
	body, err := os.ReadFile(bodyPath)
	if err != nil {
		return Entry{}, false
	}
	return Entry{
		URL:        url,
		StatusCode: m.StatusCode,
		Body:       string(body),
		FetchedAt:  fetchedAt,
		Elapsed:    time.Duration(m.ElapsedSec * float64(time.Second)),
	}, true
}

// Put overwrites any previous entry for url. Metadata is written separately
// from the body so it can be inspected without loading the whole response.
func (c *Cache) Put(url string, statusCode int, body string, elapsed time.Duration) error {
	metaPath, bodyPath := c.paths(url)
	m := entryMeta{
		URL:        url,
		StatusCode: statusCode,
		FetchedAt:  float64(c.now().UnixNano()) / float64(time.Second),
		ElapsedSec: elapsed.Seconds(),
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(metaPath, raw, 0o644); err != nil {
		return err
	}
	return os.WriteFile(bodyPath, []byte(body), 0o644)
}
