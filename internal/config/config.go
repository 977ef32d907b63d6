package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds devdeck configuration.
type Config struct {
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
	TUI    TUIConfig    `toml:"tui"`
	Serve  ServeConfig  `toml:"serve"`
	Export ExportConfig `toml:"export"`
}

// UIConfig controls display options.
type UIConfig struct {
	Emoji bool `toml:"emoji"`
	Color bool `toml:"color"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "pretty", "text", "json"
}

// TUIConfig maps terminal cells to scene pixels.
type TUIConfig struct {
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
}

// ServeConfig controls the HTTP preview host.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// ExportConfig controls batch rendering.
type ExportConfig struct {
	Format      string `toml:"format"` // "svg", "png"
	Dir         string `toml:"dir"`
	Concurrency int    `toml:"concurrency"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI:     UIConfig{Emoji: true, Color: true},
		Log:    LogConfig{Level: "info", Format: "pretty"},
		TUI:    TUIConfig{CellWidth: 10, CellHeight: 20},
		Serve:  ServeConfig{Addr: ":8080"},
		Export: ExportConfig{Format: "svg", Dir: ".", Concurrency: 4},
	}
}

// ConfigDir returns the devdeck config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "devdeck")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Load reads the config file, falling back to defaults, then applies
// DEVDECK_* environment overrides.
func Load() *Config {
	cfg := Default()
	path := configPath()

	data, err := os.ReadFile(path)
	if err == nil {
		_ = toml.Unmarshal(data, cfg)
	}

	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DEVDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DEVDECK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DEVDECK_SERVE_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := os.Getenv("DEVDECK_EXPORT_FORMAT"); v != "" {
		cfg.Export.Format = v
	}
	if v := os.Getenv("DEVDECK_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v, err := strconv.Atoi(os.Getenv("DEVDECK_EXPORT_CONCURRENCY")); err == nil && v > 0 {
		cfg.Export.Concurrency = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.UI.Color = false
	}
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
