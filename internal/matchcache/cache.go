package matchcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
)

// FileName is the cache file created inside the cache directory.
const FileName = "match_cache.json"

var digestNamespace = uuid.MustParse("4f0d8c2a-7b1e-4e39-a6d5-0c9e2f81b7a4")

// Key identifies one cached computation.
type Key struct {
	WorkID  string `json:"work_id"`
	Version string `json:"version"`
}

// Entry is one cached alignment pass.
type Entry struct {
	Key
	InputDigest string                  `json:"input_digest"`
	Results     []alignment.MatchResult `json:"results"`
	CachedAt    time.Time               `json:"cached_at"`
}

// Cache provides thread-safe access to the match cache.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[Key]Entry
}

// NewCache creates a cache backed by path. An empty path yields a cache where
// every lookup misses and every store is dropped.
func NewCache(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "matchcache")
	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[Key]Entry),
	}
	if path == "" {
		return c
	}
	if err := c.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load match cache", "matchcache_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "every work will be re-aligned"))
	}
	return c
}

// InputDigest fingerprints the texts a pass was computed from.
func InputDigest(transcriptions, candidates []string) string {
	var b strings.Builder
	for _, t := range transcriptions {
		b.WriteString(t)
		b.WriteByte(0)
	}
	b.WriteByte(1)
	for _, c := range candidates {
		b.WriteString(c)
		b.WriteByte(0)
	}
	return uuid.NewSHA1(digestNamespace, []byte(b.String())).String()
}

// Lookup returns the entry for key when its digest matches.
func (c *Cache) Lookup(key Key, digest string) (Entry, bool) {
	if c.path == "" || key.WorkID == "" {
		return Entry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.InputDigest != digest {
		return Entry{}, false
	}
	return entry, true
}

// Store adds or replaces an entry and persists the cache. Older versions of
// the same work are dropped.
func (c *Cache) Store(entry Entry) error {
	entry.WorkID = strings.TrimSpace(entry.WorkID)
	if entry.WorkID == "" {
		return errors.New("work ID cannot be empty")
	}
	if c.path == "" {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.WorkID == entry.WorkID {
			delete(c.entries, key)
		}
	}
	c.entries[entry.Key] = entry
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cached alignment results",
		logging.String(logging.FieldWorkID, entry.WorkID),
		logging.String("version", entry.Version),
		logging.Int("result_count", len(entry.Results)))
	return nil
}

// SkipStore, returned by a compute function together with its results, makes
// Resolve hand the results back without caching them.
var SkipStore = errors.New("skip storing results")

// Resolve returns cached results for key and digest, computing and storing
// them on a miss. The boolean reports a cache hit.
func (c *Cache) Resolve(key Key, digest string, compute func() ([]alignment.MatchResult, error)) ([]alignment.MatchResult, bool, error) {
	if entry, ok := c.Lookup(key, digest); ok {
		return entry.Results, true, nil
	}
	results, err := compute()
	if errors.Is(err, SkipStore) {
		return results, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := c.Store(Entry{Key: key, InputDigest: digest, Results: results}); err != nil {
		logging.WarnWithContext(c.logger, "failed to store alignment results", "matchcache_store_failed",
			logging.String(logging.FieldWorkID, key.WorkID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "work will be re-aligned next run"))
	}
	return results, false, nil
}

// Remove drops every entry for a work.
func (c *Cache) Remove(workID string) error {
	workID = strings.TrimSpace(workID)
	if workID == "" {
		return errors.New("work ID cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := false
	for key := range c.entries {
		if key.WorkID == workID {
			delete(c.entries, key)
			removed = true
		}
	}
	if !removed {
		return fmt.Errorf("work %q not found in cache", workID)
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	return nil
}

// List returns all entries sorted by work ID.
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedLocked()
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]Entry)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	return nil
}

// Count returns the number of entries.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) sortedLocked() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].WorkID != entries[j].WorkID {
			return entries[i].WorkID < entries[j].WorkID
		}
		return entries[i].Version < entries[j].Version
	})
	return entries
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	c.entries = make(map[Key]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.WorkID) != "" {
			c.entries[entry.Key] = entry
		}
	}
	c.logger.Debug("loaded match cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return nil
}

// save writes the cache to disk atomically.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.sortedLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
