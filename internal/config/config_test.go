package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultHasSaneFlagValues(t *testing.T) {
	cfg := Default()
	if cfg.Output != "pp" {
		t.Errorf("Output = %q, want pp", cfg.Output)
	}
	if cfg.Sep != "," {
		t.Errorf("Sep = %q, want ,", cfg.Sep)
	}
	if cfg.NoGraph {
		t.Error("NoGraph should default to false")
	}
	if time.Duration(cfg.Timeout) != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", time.Duration(cfg.Timeout))
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}
	if cfg != Default() {
		t.Errorf("Load() of a missing file = %+v, want Default()", cfg)
	}
}

func TestLoadOverridesDefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mzfeat.yaml")
	if err := os.WriteFile(path, []byte("output: csv\nsep: \";\"\nno_graph: true\ntimeout: 5s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "csv" || cfg.Sep != ";" || !cfg.NoGraph {
		t.Errorf("Load() = %+v, want output=csv sep=; no_graph=true", cfg)
	}
	if time.Duration(cfg.Timeout) != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", time.Duration(cfg.Timeout))
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mzfeat.yaml")
	if err := os.WriteFile(path, []byte("timeout: not-a-duration\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() with a malformed timeout should return an error")
	}
}

func TestDiscoverFallsBackToDefaultWhenDirEmpty(t *testing.T) {
	cfg, err := Discover("")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Discover(\"\") = %+v, want Default()", cfg)
	}
}

func TestDiscoverFindsConfigInDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mzfeat.yaml")
	if err := os.WriteFile(path, []byte("output: dict\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Output != "dict" {
		t.Errorf("Discover() Output = %q, want dict", cfg.Output)
	}
}
