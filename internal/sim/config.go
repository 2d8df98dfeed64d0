package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"csim/pkg/tailbuf"
)

// ConfigFileName is the project config file name.
const ConfigFileName = ".csim.json"

// Config holds the effective tool configuration.
type Config struct {
	// OutDir is where result files and the run lock live.
	OutDir string

	// MaxOutputBytes caps each simulation transcript.
	MaxOutputBytes int

	// Cache configures result memoization.
	Cache CacheSettings
}

// CacheSettings mirror the result cache knobs.
type CacheSettings struct {
	Enabled    bool
	TTLMillis  int64
	MaxEntries int
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // path to global config if loaded, empty otherwise
	Project string // path to project config if loaded, empty otherwise
}

// Overrides are CLI-level settings that win over every config file.
type Overrides struct {
	OutDir  string
	NoCache bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		OutDir:         ".csim",
		MaxOutputBytes: tailbuf.DefaultMaxBytes,
		Cache: CacheSettings{
			Enabled:    true,
			TTLMillis:  60_000,
			MaxEntries: 128,
		},
	}
}

// LoadConfig loads configuration with the following precedence
// (highest wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/csim/config.json or
//     ~/.config/csim/config.json)
//  3. Project config (.csim.json in workDir, if present)
//  4. Explicit config file via configPath (must exist if set)
//  5. CLI overrides
func LoadConfig(workDir, configPath string, overrides Overrides, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	if globalPath := globalConfigPath(env); globalPath != "" {
		fc, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, fc)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, ConfigFileName), false
	if configPath != "" {
		projectPath, mustExist = configPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
	}

	fc, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if loaded {
		sources.Project = projectPath
		cfg = mergeConfig(cfg, fc)
	}

	if overrides.OutDir != "" {
		cfg.OutDir = overrides.OutDir
	}

	if overrides.NoCache {
		cfg.Cache.Enabled = false
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, ConfigSources{}, err
	}

	return cfg, sources, nil
}

// globalConfigPath resolves the global config location. Returns empty
// if no home directory can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "csim", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "csim", "config.json")
}

// fileConfig is the on-disk shape. Pointers distinguish "absent" from
// zero values during merging.
type fileConfig struct {
	OutDir         *string          `json:"out_dir"`
	MaxOutputBytes *int             `json:"max_output_bytes"`
	Cache          *fileCacheConfig `json:"cache"`
}

type fileCacheConfig struct {
	Enabled    *bool  `json:"enabled"`
	TTLMillis  *int64 `json:"ttl_millis"`
	MaxEntries *int   `json:"max_entries"`
}

// loadConfigFile reads one config file. Missing optional files return
// loaded=false without error.
func loadConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		if mustExist {
			return fileConfig{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}

		return fileConfig{}, false, nil
	}

	fc, parseErr := parseConfig(data)
	if parseErr != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, parseErr)
	}

	return fc, true, nil
}

func parseConfig(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig

	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return fc, nil
}

func mergeConfig(base Config, overlay fileConfig) Config {
	if overlay.OutDir != nil {
		base.OutDir = *overlay.OutDir
	}

	if overlay.MaxOutputBytes != nil {
		base.MaxOutputBytes = *overlay.MaxOutputBytes
	}

	if overlay.Cache != nil {
		if overlay.Cache.Enabled != nil {
			base.Cache.Enabled = *overlay.Cache.Enabled
		}

		if overlay.Cache.TTLMillis != nil {
			base.Cache.TTLMillis = *overlay.Cache.TTLMillis
		}

		if overlay.Cache.MaxEntries != nil {
			base.Cache.MaxEntries = *overlay.Cache.MaxEntries
		}
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.OutDir == "" {
		return errOutDirEmpty
	}

	if cfg.Cache.MaxEntries < 0 {
		return errMaxEntriesNegative
	}

	return nil
}

// FormatConfig returns the effective config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	view := fileConfig{
		OutDir:         &cfg.OutDir,
		MaxOutputBytes: &cfg.MaxOutputBytes,
		Cache: &fileCacheConfig{
			Enabled:    &cfg.Cache.Enabled,
			TTLMillis:  &cfg.Cache.TTLMillis,
			MaxEntries: &cfg.Cache.MaxEntries,
		},
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}
