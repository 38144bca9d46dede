package server

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

// staticFiles serves files from a directory below a URL prefix.
type staticFiles struct {
	dir     http.Dir
	prefix  string
	cache   CacheControl
	headers map[string]string
}

func newStaticFiles(config *Config) *staticFiles {
	prefix := config.StaticPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &staticFiles{
		dir:     http.Dir(config.StaticDir),
		prefix:  prefix,
		cache:   config.CacheControl,
		headers: config.StaticHeaders,
	}
}

// relPath returns a sanitized relative path for urlPath. It rejects
// traversal and absolute-path tricks so requests cannot escape the
// directory.
func (s *staticFiles) relPath(urlPath string) (string, bool) {
	rel, ok := strings.CutPrefix(urlPath, s.prefix)
	if !ok || rel == "" {
		return "", false
	}

	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}
	// "/static//etc/passwd" leaves a leading slash after the prefix.
	if strings.HasPrefix(rel, "/") {
		return "", false
	}
	// Reject dot-segments before cleaning so traversal is not cleaned away.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

// serve writes the file for r and reports whether one was found.
func (s *staticFiles) serve(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	rel, ok := s.relPath(r.URL.Path)
	if !ok {
		return false
	}

	f, err := s.dir.Open("/" + rel)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	s.applyCacheHeaders(w, rel)
	for key, value := range s.headers {
		w.Header().Set(key, value)
	}
	http.ServeContent(w, r, rel, info.ModTime(), f)
	return true
}

func (s *staticFiles) applyCacheHeaders(w http.ResponseWriter, rel string) {
	switch s.cache {
	case CacheControlNone:
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	case CacheControlProduction:
		if isFingerprinted(rel) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		}
	}
}

// isFingerprinted reports whether the file name carries a content hash,
// e.g. "app.a1b2c3d4.css".
func isFingerprinted(rel string) bool {
	parts := strings.Split(path.Base(rel), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
