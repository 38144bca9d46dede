package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/feather/internal/errors"
)

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`{"index.mjs": "index.3f9a1c.mjs", "/app.css": "/app.77b02e.css"}`))
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	tests := []struct {
		source string
		want   string
	}{
		{"index.mjs", "index.3f9a1c.mjs"},
		{"/index.mjs", "index.3f9a1c.mjs"},
		{"app.css", "app.77b02e.css"},
		{"/missing.js", "missing.js"},
	}
	for _, tt := range tests {
		if got := m.Resolve(tt.source); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}

	if _, ok := m.Lookup("missing.js"); ok {
		t.Error("Lookup(missing.js) reported a hit")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json"},
		{"not an object", `["a"]`},
		{"empty name", `{"index.mjs": ""}`},
		{"empty source", `{"/": "x.js"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var fe *errors.FeatherError
			if !errors.As(err, &fe) || fe.Code != "E124" {
				t.Errorf("err = %v, want E124", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(`{"index.mjs": "index.abc.mjs"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Resolve("index.mjs"); got != "index.abc.mjs" {
		t.Errorf("Resolve = %q", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestResolver(t *testing.T) {
	m := NewManifest()
	m.Set("index.mjs", "index.abc.mjs")

	tests := []struct {
		name   string
		m      *Manifest
		prefix string
		source string
		want   string
	}{
		{"fingerprinted", m, "/static/", "/index.mjs", "/static/index.abc.mjs"},
		{"prefix without slash", m, "/static", "index.mjs", "/static/index.abc.mjs"},
		{"default prefix", m, "", "/index.mjs", "/index.abc.mjs"},
		{"missing entry", m, "/", "/other.js", "/other.js"},
		{"passthrough", nil, "/static/", "/index.mjs", "/static/index.mjs"},
		{"absolute url", m, "/static/", "https://cdn.example.com/x.js", "https://cdn.example.com/x.js"},
		{"protocol relative", m, "/", "//cdn.example.com/x.js", "//cdn.example.com/x.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewResolver(tt.m, tt.prefix).Asset(tt.source); got != tt.want {
				t.Errorf("Asset(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}
