package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// API is the scraping service the dashboard talks to
	API struct {
		BaseURL        string `toml:"base_url"`
		RequestTimeout int    `toml:"request_timeout"` // seconds
	} `toml:"api"`

	// Dashboard polling and export behaviour
	Dashboard struct {
		JobsPollSeconds   int    `toml:"jobs_poll_seconds"`
		StatusPollSeconds int    `toml:"status_poll_seconds"`
		HealthPollSeconds int    `toml:"health_poll_seconds"`
		LogLines          int    `toml:"log_lines"`
		PageSize          int    `toml:"page_size"`
		ExportDir         string `toml:"export_dir"`
	} `toml:"dashboard"`

	// Stub is the local in-memory API used for development
	Stub struct {
		Host      string `toml:"host"`
		Port      int    `toml:"port"`
		Envelope  string `toml:"envelope"` // inline, wrapped or mixed
		RateLimit int    `toml:"rate_limit"` // requests per second, 0 disables
	} `toml:"stub"`

	Log struct {
		Level string `toml:"level"`
		Dir   string `toml:"dir"`
	} `toml:"log"`
}

// DefaultConfig returns a config with default values.
// The API defaults match the scraping service's own defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:3001"
	cfg.API.RequestTimeout = 30
	cfg.Dashboard.JobsPollSeconds = 5
	cfg.Dashboard.StatusPollSeconds = 30
	cfg.Dashboard.HealthPollSeconds = 5
	cfg.Dashboard.LogLines = 50
	cfg.Dashboard.PageSize = 50
	cfg.Dashboard.ExportDir = "."
	cfg.Stub.Host = "0.0.0.0"
	cfg.Stub.Port = 3001
	cfg.Stub.Envelope = "inline"
	cfg.Stub.RateLimit = 50
	cfg.Log.Level = "info"
	cfg.Log.Dir = "tmp"
	return cfg
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "reels-dash", "config.toml"), nil
}

// Load reads configuration from ~/.config/reels-dash/config.toml.
// Creates the file with defaults if it doesn't exist. Environment
// variables win over the file.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		applyEnv(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeDefaults(&cfg, DefaultConfig())
	applyEnv(&cfg)

	return &cfg, nil
}

// mergeDefaults fills zero values in cfg from def.
func mergeDefaults(cfg, def *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.RequestTimeout == 0 {
		cfg.API.RequestTimeout = def.API.RequestTimeout
	}
	if cfg.Dashboard.JobsPollSeconds == 0 {
		cfg.Dashboard.JobsPollSeconds = def.Dashboard.JobsPollSeconds
	}
	if cfg.Dashboard.StatusPollSeconds == 0 {
		cfg.Dashboard.StatusPollSeconds = def.Dashboard.StatusPollSeconds
	}
	if cfg.Dashboard.HealthPollSeconds == 0 {
		cfg.Dashboard.HealthPollSeconds = def.Dashboard.HealthPollSeconds
	}
	if cfg.Dashboard.LogLines == 0 {
		cfg.Dashboard.LogLines = def.Dashboard.LogLines
	}
	if cfg.Dashboard.PageSize == 0 {
		cfg.Dashboard.PageSize = def.Dashboard.PageSize
	}
	if cfg.Dashboard.ExportDir == "" {
		cfg.Dashboard.ExportDir = def.Dashboard.ExportDir
	}
	if cfg.Stub.Host == "" {
		cfg.Stub.Host = def.Stub.Host
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = def.Stub.Port
	}
	if cfg.Stub.Envelope == "" {
		cfg.Stub.Envelope = def.Stub.Envelope
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = def.Log.Dir
	}
}

func applyEnv(cfg *Config) {
	if baseURL := os.Getenv("REELS_API_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if port := os.Getenv("REELS_STUB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Stub.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set updates a single value addressed as section.key and validates it.
// It does not persist; call Save afterwards.
func (c *Config) Set(keyPath, value string) error {
	parts := strings.Split(keyPath, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}
	section, key := parts[0], parts[1]

	switch section {
	case "api":
		switch key {
		case "base_url":
			c.API.BaseURL = value
		case "request_timeout":
			return setPositiveInt(&c.API.RequestTimeout, key, value)
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "dashboard":
		switch key {
		case "jobs_poll_seconds":
			return setPositiveInt(&c.Dashboard.JobsPollSeconds, key, value)
		case "status_poll_seconds":
			return setPositiveInt(&c.Dashboard.StatusPollSeconds, key, value)
		case "health_poll_seconds":
			return setPositiveInt(&c.Dashboard.HealthPollSeconds, key, value)
		case "log_lines":
			return setPositiveInt(&c.Dashboard.LogLines, key, value)
		case "page_size":
			return setPositiveInt(&c.Dashboard.PageSize, key, value)
		case "export_dir":
			c.Dashboard.ExportDir = value
		default:
			return fmt.Errorf("unknown dashboard key: %s", key)
		}
	case "stub":
		switch key {
		case "host":
			c.Stub.Host = value
		case "port":
			return setPositiveInt(&c.Stub.Port, key, value)
		case "envelope":
			switch value {
			case "inline", "wrapped", "mixed":
				c.Stub.Envelope = value
			default:
				return fmt.Errorf("invalid envelope value: %s (want inline, wrapped or mixed)", value)
			}
		case "rate_limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid rate_limit value: %s", value)
			}
			c.Stub.RateLimit = n
		default:
			return fmt.Errorf("unknown stub key: %s", key)
		}
	case "log":
		switch key {
		case "level":
			c.Log.Level = strings.ToLower(value)
		case "dir":
			c.Log.Dir = value
		default:
			return fmt.Errorf("unknown log key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
	return nil
}

func setPositiveInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid %s value: %s", key, value)
	}
	*dst = n
	return nil
}
