package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.UI.Color {
		t.Error("default color should be true")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Log.Level)
	}
	if cfg.TUI.CellWidth != 10 || cfg.TUI.CellHeight != 20 {
		t.Errorf("unexpected cell size %dx%d", cfg.TUI.CellWidth, cfg.TUI.CellHeight)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("expected serve addr ':8080', got %q", cfg.Serve.Addr)
	}
	if cfg.Export.Format != "svg" {
		t.Errorf("expected export format 'svg', got %q", cfg.Export.Format)
	}
	if cfg.Export.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Export.Concurrency)
	}
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	dir := ConfigDir()
	if dir != "/tmp/test-xdg/devdeck" {
		t.Errorf("expected /tmp/test-xdg/devdeck, got %q", dir)
	}

	// Test without XDG_CONFIG_HOME
	t.Setenv("XDG_CONFIG_HOME", "")
	dir = ConfigDir()
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "devdeck")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Export.Concurrency = 8
	cfg.TUI.CellWidth = 6

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Load()
	if loaded.Export.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", loaded.Export.Concurrency)
	}
	if loaded.TUI.CellWidth != 6 {
		t.Errorf("expected cell width 6, got %d", loaded.TUI.CellWidth)
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	path := filepath.Join(tmpDir, "devdeck", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second call should be no-op
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists second call failed: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEVDECK_LOG_LEVEL", "debug")
	t.Setenv("DEVDECK_SERVE_ADDR", "127.0.0.1:9999")
	t.Setenv("DEVDECK_EXPORT_CONCURRENCY", "2")
	t.Setenv("NO_COLOR", "1")

	cfg := Load()
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Log.Level)
	}
	if cfg.Serve.Addr != "127.0.0.1:9999" {
		t.Errorf("unexpected addr %q", cfg.Serve.Addr)
	}
	if cfg.Export.Concurrency != 2 {
		t.Errorf("expected concurrency 2, got %d", cfg.Export.Concurrency)
	}
	if cfg.UI.Color {
		t.Error("NO_COLOR should disable color")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("DEVDECK_EXPORT_FORMAT=png\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEVDECK_EXPORT_FORMAT", "")
	os.Unsetenv("DEVDECK_EXPORT_FORMAT")

	if err := LoadEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv("DEVDECK_EXPORT_FORMAT"); got != "png" {
		t.Errorf("expected png from env file, got %q", got)
	}
}
