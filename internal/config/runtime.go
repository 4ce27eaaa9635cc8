// internal/config/runtime.go
//
// Runtime-property store.
//
// Context
// -------
// Runtime properties are the process-level key/value store the embedding
// application may write at any time, before or after the first
// resolution.  The resolver reads a fresh snapshot on every pass, so a
// `Set` followed by `Reload` is always observed.
//
// The CLI fills the store from repeated `-D key=value` flags.

package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidDefine is returned by ParseDefines for a definition without a key.
var ErrInvalidDefine = errors.New("invalid property definition")

// Properties is a concurrency-safe runtime-property store.  It implements
// Source.
type Properties struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewProperties returns a store seeded with a copy of initial.
func NewProperties(initial map[string]string) *Properties {
	return &Properties{m: copyMap(initial)}
}

// Set stores value under key.
func (p *Properties) Set(key, value string) {
	p.mu.Lock()
	if p.m == nil {
		p.m = make(map[string]string)
	}
	p.m[key] = value
	p.mu.Unlock()
}

// Get returns the value for key.
func (p *Properties) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	val, ok := p.m[key]
	return val, ok
}

// Unset removes key.
func (p *Properties) Unset(key string) {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
}

// Load implements Source and returns a snapshot.
func (p *Properties) Load() (map[string]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copyMap(p.m), nil
}

// ParseDefines turns `key=value` definitions into a map.  A definition
// without `=` sets the key to the empty string; later definitions win.
func ParseDefines(defs []string) (map[string]string, error) {
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		key, val, _ := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDefine, d)
		}
		out[key] = val
	}
	return out, nil
}
