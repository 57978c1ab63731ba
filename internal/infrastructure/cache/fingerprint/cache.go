// Package fingerprint provides a process-local index from normalized
// document content to the resume that first carried it. Entries are
// never evicted; the index lives for the lifetime of the process.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/gridrez/resume-parser/internal/observability/metrics"
)

type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) *Cache {
	return &Cache{entries: make(map[string]string), metrics: m}
}

// Fingerprint hashes the text after trimming surrounding whitespace and
// lowercasing, so cosmetic differences between uploads map to the same key.
func (c *Cache) Fingerprint(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Lookup(fingerprint string) (string, bool) {
	c.mu.RLock()
	id, ok := c.entries[fingerprint]
	c.mu.RUnlock()
	c.metrics.RecordCacheLookup(ok)
	return id, ok
}

// Insert records the mapping unless the fingerprint is already known.
// The first resume to complete for a given content wins.
func (c *Cache) Insert(fingerprint, resumeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[fingerprint]; ok {
		return
	}
	c.entries[fingerprint] = resumeID
}
