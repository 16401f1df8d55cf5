package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Root != "." {
		t.Errorf("expected root '.', got %q", cfg.Root)
	}
	if cfg.Mode != ModeRecursive {
		t.Errorf("expected mode recursive, got %q", cfg.Mode)
	}
	if len(cfg.Modules) != 12 {
		t.Errorf("expected 12 default modules, got %d", len(cfg.Modules))
	}
	if cfg.Modules[0] != "Module 0" || cfg.Modules[11] != "Outils" {
		t.Errorf("unexpected module list: %v", cfg.Modules)
	}
	if len(cfg.Tags) == 0 {
		t.Error("expected non-empty default tag vocabulary")
	}
	if cfg.Theme.Primary == "" {
		t.Error("expected default theme primary color")
	}
}

func TestIsIgnoredDir(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range []string{".git", ".github", "node_modules", "__pycache__"} {
		if !cfg.IsIgnoredDir(name) {
			t.Errorf("expected %q to be ignored", name)
		}
	}
	if cfg.IsIgnoredDir("Module 3") {
		t.Error("expected Module 3 NOT to be ignored")
	}
}

func TestIsIgnoredFile(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.IsIgnoredFile("README.md") {
		t.Error("expected README.md to be ignored")
	}
	if !cfg.IsIgnoredFile("index.html") {
		t.Error("expected generated index.html to always be input-excluded")
	}
	if cfg.IsIgnoredFile("quiz.html") {
		t.Error("expected quiz.html NOT to be ignored")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "indexgen.yaml")
	data := []byte(`
root: /srv/site
base_url: https://example.org/site/
mode: modules
modules: ["Module 0", "Outils"]
tags: [sommeil, exercice]
site:
  title: Test Site
`)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.loadFromFile(tmp); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	cfg.normalize()

	if cfg.Root != "/srv/site" {
		t.Errorf("expected root /srv/site, got %q", cfg.Root)
	}
	if cfg.BaseURL != "https://example.org/site" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.Mode != ModeModules {
		t.Errorf("expected mode modules, got %q", cfg.Mode)
	}
	if len(cfg.Modules) != 2 {
		t.Errorf("expected 2 modules, got %d", len(cfg.Modules))
	}
	if len(cfg.Tags) != 2 {
		t.Errorf("expected tag vocabulary replaced, got %v", cfg.Tags)
	}
	if cfg.Site.Title != "Test Site" {
		t.Errorf("expected site title override, got %q", cfg.Site.Title)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Theme.Primary != "#8FAFB1" {
		t.Errorf("expected default primary color, got %q", cfg.Theme.Primary)
	}
}

func TestLoadWatchFlag(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "indexgen.yaml")
	if err := os.WriteFile(cfgPath, []byte("watch: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// YAML value holds when the flag is absent.
	cfg, err := load([]string{"-config", cfgPath})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Watch {
		t.Error("expected watch enabled by config file")
	}

	// An explicit -watch=false overrides the config file.
	cfg, err = load([]string{"-config", cfgPath, "-watch=false"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Watch {
		t.Error("expected explicit -watch=false to override config file")
	}

	// The flag can also enable watch without a config file.
	cfg, err = load([]string{"-watch"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Watch {
		t.Error("expected -watch to enable watch mode")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Mode = "incremental"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown mode")
	}

	cfg = DefaultConfig()
	cfg.Root = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty root")
	}
}
