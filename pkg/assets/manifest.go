// Package assets maps source asset names to their fingerprinted names.
//
// A build step writes a manifest next to the static files:
//
//	{
//	  "index.mjs": "index.3f9a1c.mjs",
//	  "app.css": "app.77b02e.css"
//	}
//
// The document shell resolves its client script and stylesheets through a
// Resolver, so pages reference the fingerprinted files that the static
// server marks immutable.
package assets

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/vango-dev/feather/internal/errors"
)

// Manifest holds source to fingerprinted name mappings. It is safe for
// concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E124").WithDetail("Cannot read " + path).Wrap(err)
	}
	return Parse(data)
}

// Parse decodes a manifest. Keys are stored without a leading slash, and
// empty names are rejected.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]string
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.New("E124").WithDetail(err.Error()).Wrap(err)
	}

	m := NewManifest()
	for source, name := range raw {
		if clean(source) == "" || clean(name) == "" {
			return nil, errors.New("E124").
				WithDetailf("empty entry %q: %q", source, name)
		}
		m.entries[clean(source)] = clean(name)
	}
	return m, nil
}

func clean(name string) string {
	return strings.TrimLeft(strings.TrimSpace(name), "/")
}

// Lookup returns the fingerprinted name for source.
func (m *Manifest) Lookup(source string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.entries[clean(source)]
	return name, ok
}

// Resolve returns the fingerprinted name for source, or source itself
// (without its leading slash) when the manifest has no entry.
func (m *Manifest) Resolve(source string) string {
	if name, ok := m.Lookup(source); ok {
		return name
	}
	return clean(source)
}

// Set adds or replaces an entry.
func (m *Manifest) Set(source, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[clean(source)] = clean(name)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
