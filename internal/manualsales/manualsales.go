// Package manualsales tracks tickets sold outside the registration flow
// (door sales, external platforms). The counter only offsets the displayed
// remaining-capacity figure; it is never server-authoritative and is
// persisted per host in a local JSON file, matching the per-browser storage
// the admin panel originally used.
package manualsales

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Counter is a file-backed integer counter keyed by event id.
type Counter struct {
	mu     sync.Mutex
	path   string
	counts map[string]int
}

// DefaultPath places the counter file under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "presents", "manual-sales.json")
}

// Open loads the counter file, creating an empty counter when none exists.
func Open(path string) (*Counter, error) {
	c := &Counter{path: path, counts: make(map[string]int)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manual sales file: %w", err)
	}
	if err := json.Unmarshal(data, &c.counts); err != nil {
		// A corrupt file resets the counters rather than blocking the panel.
		c.counts = make(map[string]int)
	}
	return c, nil
}

// Get returns the recorded manual sales for an event, zero when unset.
func (c *Counter) Get(eventID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[eventID]
}

// Set records the manual sales figure for an event and persists the file.
// Negative values clamp to zero.
func (c *Counter) Set(eventID string, n int) error {
	if n < 0 {
		n = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[eventID] = n

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create manual sales dir: %w", err)
	}
	data, err := json.MarshalIndent(c.counts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manual sales: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write manual sales file: %w", err)
	}
	return nil
}
