package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Cache memoizes successfully parsed manifests by path. Failures are not
// cached so a later call sees a manifest created in the meantime.
type Cache struct {
	entries map[string]*Manifest
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Manifest)}
}

// Load returns the manifest at path, parsing it on first use.
func (c *Cache) Load(path string) (*Manifest, error) {
	if m, ok := c.entries[path]; ok {
		return m, nil
	}

	m, err := Parse(path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = m
	return m, nil
}

// First returns the first candidate that parses, in order. When none
// does, the error wraps ErrNotFound and lists every candidate.
func (c *Cache) First(paths ...string) (*Manifest, error) {
	var errs []error
	for _, path := range paths {
		m, err := c.Load(path)
		if err == nil {
			return m, nil
		}
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("%w (tried %s): %w", ErrNotFound, strings.Join(paths, ", "), errors.Join(errs...))
}
