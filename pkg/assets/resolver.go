package assets

import "strings"

// Resolver turns a source asset name into the URL a page should reference.
type Resolver interface {
	Asset(source string) string
}

// NewResolver returns a Resolver that looks names up in m and serves them
// under prefix. A nil manifest passes names through unchanged, which keeps
// development and production URLs under the same prefix.
//
//	r := assets.NewResolver(m, "/static/")
//	r.Asset("/index.mjs") // "/static/index.3f9a1c.mjs"
func NewResolver(m *Manifest, prefix string) Resolver {
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &resolver{manifest: m, prefix: prefix}
}

type resolver struct {
	manifest *Manifest
	prefix   string
}

func (r *resolver) Asset(source string) string {
	// Absolute URLs are left alone.
	if strings.Contains(source, "://") || strings.HasPrefix(source, "//") {
		return source
	}
	name := clean(source)
	if r.manifest != nil {
		name = r.manifest.Resolve(name)
	}
	return r.prefix + name
}
