package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default level info, got %s", cfg.Logging.Level)
	}
	if cfg.Undo.Capacity != 100 {
		t.Errorf("Expected undo capacity 100, got %d", cfg.Undo.Capacity)
	}
	if cfg.Hash.Algorithm != "sha256" || cfg.Dedup.Index != "memory" || cfg.Dedup.Folder != "Duplicates" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Organize.SniffContent {
		t.Error("Sniffing should be off by default")
	}
	if cfg.Date.Source != "created" || cfg.Date.Layout != "2006-01" {
		t.Errorf("Unexpected date defaults: %+v", cfg.Date)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `logging:
  level: debug
undo:
  capacity: 5
hash:
  algorithm: blake2b
dedup:
  index: sqlite
  folder: Dupes
organize:
  sniff_content: true
date:
  source: exif
  layout: "2006/01/02"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Undo.Capacity != 5 {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if cfg.Hash.Algorithm != "blake2b" || cfg.Dedup.Index != "sqlite" || cfg.Dedup.Folder != "Dupes" {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if !cfg.Organize.SniffContent || cfg.Date.Source != "exif" || cfg.Date.Layout != "2006/01/02" {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if Get().Undo.Capacity != 5 {
		t.Error("Get() should return the loaded config")
	}
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Setenv("FILE_ORGANIZER_HASH_ALGORITHM", "xxhash")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Hash.Algorithm != "xxhash" {
		t.Errorf("Expected env override, got %s", cfg.Hash.Algorithm)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for explicit missing config file")
	}
}

// chdir stands in for testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores the previous one when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error = %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("Chdir(%q) error = %v", prev, err)
		}
	})
}
