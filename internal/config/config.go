// Package config loads config.toml from the config directory. Keys missing
// from the file keep their defaults; the file is created on first run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kk-code-lab/rlaunch/internal/binfmt"
	"github.com/kk-code-lab/rlaunch/internal/index"
	"github.com/kk-code-lab/rlaunch/internal/logging"
	"github.com/kk-code-lab/rlaunch/internal/search"
)

const (
	// FileName is the configuration file inside the config directory.
	FileName = "config.toml"
	// DirEnv overrides the config directory.
	DirEnv = "RLAUNCH_CONFIG_DIR"
	appDir = "rlaunch"
)

var log = logging.ForComponent(logging.CompConfig)

// Config is the user configuration.
type Config struct {
	Appearance Appearance `toml:"appearance"`
	Search     Search     `toml:"search"`
	Paths      Paths      `toml:"paths"`
	Log        Log        `toml:"log"`
}

// Appearance bounds how much is shown and remembered.
type Appearance struct {
	MaxResults        int `toml:"max_results"`
	TopNHistory       int `toml:"top_n_history"`
	MaxHistoryDisplay int `toml:"max_history_display"`
}

// Search selects match modes for the catalog and for folder browsing.
type Search struct {
	NormalMode       string `toml:"normal_mode"`
	FolderMode       string `toml:"folder_mode"`
	ShowHiddenSystem bool   `toml:"show_hidden_system"`
}

// Paths lists what the indexer walks. Additional directories are scanned
// for shortcuts only; Scan entries carry their own extensions.
type Paths struct {
	Additional []string   `toml:"additional,omitempty"`
	Scan       []ScanPath `toml:"scan"`
}

// ScanPath is one [[paths.scan]] table.
type ScanPath struct {
	Path           string   `toml:"path"`
	Extensions     []string `toml:"extensions"`
	IncludeFolders bool     `toml:"include_folders"`
}

// Log configures the rotating log file.
type Log struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Appearance: Appearance{
			MaxResults:        8,
			TopNHistory:       200,
			MaxHistoryDisplay: 8,
		},
		Search: Search{
			NormalMode: search.Fuzzy.String(),
			FolderMode: search.Fuzzy.String(),
		},
		Paths: Paths{
			Scan: DefaultScanPaths(),
		},
		Log: Log{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Dir returns the config directory: $RLAUNCH_CONFIG_DIR when set, otherwise
// rlaunch under the user config directory.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(DirEnv)); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Load reads dir/config.toml. A missing file is created from Default.
// Parse and validation failures are returned together with the defaults so
// callers can report the problem and keep running.
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Save(dir, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Arrays of tables decode into the existing backing array, so the
	// defaults are detached and restored only when the file has no scan list.
	defaultScan := cfg.Paths.Scan
	cfg.Paths.Scan = nil
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	if !md.IsDefined("paths", "scan") {
		cfg.Paths.Scan = defaultScan
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warn("config_unknown_keys", slog.Any("keys", undecoded))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	return cfg, nil
}

// Save writes cfg to dir/config.toml atomically.
func Save(dir string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# rlaunch configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := binfmt.WriteFile(filepath.Join(dir, FileName), buf.Bytes()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Rules converts the configured paths into scan rules, additional
// directories first.
func (c Config) Rules() []index.ScanRule {
	rules := make([]index.ScanRule, 0, len(c.Paths.Additional)+len(c.Paths.Scan))
	for _, dir := range c.Paths.Additional {
		rules = append(rules, index.ScanRule{Path: dir, Extensions: []string{".lnk"}})
	}
	for _, p := range c.Paths.Scan {
		rules = append(rules, p.Rule())
	}
	return rules
}

// Rule converts p into an index.ScanRule.
func (p ScanPath) Rule() index.ScanRule {
	return index.ScanRule{
		Path:           p.Path,
		Extensions:     append([]string(nil), p.Extensions...),
		IncludeFolders: p.IncludeFolders,
	}
}

// NormalMode is the match mode for catalog searches.
func (c Config) NormalMode() search.Mode {
	m, _ := search.ParseMode(c.Search.NormalMode)
	return m
}

// FolderMode is the match mode for folder browsing filters.
func (c Config) FolderMode() search.Mode {
	m, _ := search.ParseMode(c.Search.FolderMode)
	return m
}

// LogConfig builds the logging setup for logs written under dir.
func (c Config) LogConfig(dir string, debug bool) logging.Config {
	return logging.Config{
		Dir:        dir,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Debug:      debug,
	}
}
