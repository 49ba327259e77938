/*
Package config manages the TOML config for bicig-toli.

A config file is created with defaults on first run. A file that fails to
decode is read again section by section, so one bad value does not throw
away the rest of the file.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toqtoga/bicig-toli/internal/utils"
	"github.com/toqtoga/bicig-toli/pkg/search"
)

const appName = "bicig-toli"

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
	Dict   DictConfig   `toml:"dict"`
}

// SearchConfig holds the query defaults.
type SearchConfig struct {
	MaxDistance int  `toml:"max_distance"`
	Limit       int  `toml:"limit"`
	Normalize   bool `toml:"normalize"`
	Workers     int  `toml:"workers"`
	CacheSize   int  `toml:"cache_size"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	DebounceMs  int `toml:"debounce_ms"`
	MaxQueryLen int `toml:"max_query_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Limit      int  `toml:"limit"`
	ShowStrict bool `toml:"show_strict"`
}

// DictConfig points at the dataset.
type DictConfig struct {
	Path string `toml:"path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxDistance: search.DefaultMaxDistance,
			Limit:       search.DefaultLimit,
			Normalize:   true,
			Workers:     1,
			CacheSize:   256,
		},
		Server: ServerConfig{
			DebounceMs:  500,
			MaxQueryLen: 64,
		},
		CLI: CliConfig{
			Limit:      search.DefaultLimit,
			ShowStrict: true,
		},
		Dict: DictConfig{
			Path: filepath.Join("data", "data.json"),
		},
	}
}

// SearchOptions converts the [search] section into query options.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		MaxDistance: c.Search.MaxDistance,
		Limit:       c.Search.Limit,
		Strict:      !c.Search.Normalize,
		Workers:     c.Search.Workers,
	}
}

// DebounceWindow returns the server debounce window.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Server.DebounceMs) * time.Millisecond
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/bicig-toli/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse picks every well-typed value out of a file that did not
// decode into Config as a whole.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "max_distance"); ok {
		s.MaxDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		s.Limit = val
	}
	if val, ok := utils.ExtractBool(data, "normalize"); ok {
		s.Normalize = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		s.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		s.CacheSize = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		server.DebounceMs = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		cli.Limit = val
	}
	if val, ok := utils.ExtractBool(data, "show_strict"); ok {
		cli.ShowStrict = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the search defaults and saves to file. Nil arguments are
// left unchanged.
func (c *Config) Update(configPath string, maxDistance, limit *int, normalize *bool) error {
	s := &c.Search
	if maxDistance != nil {
		s.MaxDistance = *maxDistance
	}
	if limit != nil {
		s.Limit = *limit
	}
	if normalize != nil {
		s.Normalize = *normalize
	}
	return SaveConfig(c, configPath)
}
