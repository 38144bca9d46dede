package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/feather/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "feather.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}

	out, err = run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Go version:") {
		t.Errorf("version output missing Go version:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	cfg := writeConfig(t, "name = \"Chores\"\n[log]\nlevel = \"error\"\n")

	out, err := run(t, "render", "--config", cfg, "--todo", "sweep <floor>")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Chores</title>",
		"sweep &lt;floor&gt;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "render", "/hello", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "World") {
		t.Errorf("render /hello missing greeting:\n%s", out)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	cfg := writeConfig(t, "[log]\nlevel = \"error\"\n")

	_, err := run(t, "render", "/nope", "--config", cfg)
	var fe *errors.FeatherError
	if !errors.As(err, &fe) || fe.Code != "E140" {
		t.Fatalf("err = %v, want E140", err)
	}
	if !strings.Contains(fe.Suggestion, "/hello") {
		t.Errorf("suggestion = %q, want known pages listed", fe.Suggestion)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cfg := writeConfig(t, "[server]\nport = 70000\n")

	_, err := run(t, "render", "--config", cfg)
	var fe *errors.FeatherError
	if !errors.As(err, &fe) || fe.Code != "E123" {
		t.Fatalf("err = %v, want E123", err)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"info\"\n")

	cfg, err := loadConfig(&globalFlags{configPath: path, logLevel: "debug", logFormat: "json"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v, want debug/json", cfg.Log)
	}
}

func TestExport_Dir(t *testing.T) {
	cfg := writeConfig(t, "[log]\nlevel = \"error\"\n")
	out := t.TempDir()

	stdout, err := run(t, "export", "--config", cfg, "--out", out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Exported 2 pages") {
		t.Errorf("stdout = %q", stdout)
	}

	for _, key := range []string{"index.html", "hello/index.html"} {
		b, err := os.ReadFile(filepath.Join(out, key))
		if err != nil {
			t.Fatalf("read %s: %v", key, err)
		}
		if !bytes.HasPrefix(b, []byte("<!DOCTYPE html>")) {
			t.Errorf("%s does not start with a doctype", key)
		}
	}
}

func TestRender_AssetManifest(t *testing.T) {
	cfg := writeConfig(t, `[static]
manifest = "manifest.json"
prefix = "/static/"

[render]
stylesheet = "app.css"

[log]
level = "error"
`)
	manifest := `{"index.mjs": "index.3f9a1c.mjs", "app.css": "app.77b02e.css"}`
	if err := os.WriteFile(filepath.Join(filepath.Dir(cfg), "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "render", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`src="/static/index.3f9a1c.mjs"`,
		`href="/static/app.77b02e.css"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_BadManifest(t *testing.T) {
	cfg := writeConfig(t, "[static]\nmanifest = \"missing.json\"\n")

	_, err := run(t, "render", "--config", cfg)
	var fe *errors.FeatherError
	if !errors.As(err, &fe) || fe.Code != "E124" {
		t.Fatalf("err = %v, want E124", err)
	}
}
