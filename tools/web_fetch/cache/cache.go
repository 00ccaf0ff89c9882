package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const DefaultFreshness = 24 * time.Hour

// Cache is an on-disk page cache keyed by URL digest. Entries older than the
// freshness window are treated as absent; they are refreshed on the next
// save, never deleted eagerly.
type Cache struct {
	Dir       string
	Freshness time.Duration
}

type entry struct {
	URL       string  `json:"url"`
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"` // unix seconds
}

func New(dir string, freshness time.Duration) *Cache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Cache{Dir: dir, Freshness: freshness}
}

func (c *Cache) pathForURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.Dir, hex.EncodeToString(sum[:])+".json")
}

// Load returns the cached text for url. Missing, unreadable, corrupt and
// stale entries all report a miss.
func (c *Cache) Load(url string) (string, bool) {
	data, err := os.ReadFile(c.pathForURL(url))
	if err != nil {
		return "", false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", false
	}
	age := time.Since(time.Unix(int64(e.Timestamp), 0))
	if age >= c.Freshness {
		return "", false
	}
	return e.Text, true
}

// Save persists text for url with the current timestamp, overwriting any
// prior entry. The write goes through a uniquely named temp file and a
// rename so a crash never leaves a half-written entry readable as valid.
func (c *Cache) Save(url, text string) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	data, err := json.Marshal(entry{URL: url, Text: text, Timestamp: float64(time.Now().Unix())})
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	dst := c.pathForURL(url)
	tmp := dst + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cache rename: %w", err)
	}
	return nil
}
