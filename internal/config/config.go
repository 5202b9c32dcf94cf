// Package config loads hiretrack settings from the environment and an
// optional JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/hiretrack/internal/storage"
)

// Environment variable names.
const (
	EnvAPIBaseURL        = "HIRETRACK_API_URL"
	EnvStorageDriver     = "HIRETRACK_STORE"
	EnvDSN               = "HIRETRACK_DSN"
	EnvDemoMode          = "HIRETRACK_DEMO_MODE"
	EnvInterviewCacheTTL = "HIRETRACK_INTERVIEW_CACHE_TTL"
	EnvMockLatency       = "HIRETRACK_MOCK_LATENCY"
	EnvRequestTimeout    = "HIRETRACK_REQUEST_TIMEOUT"
	EnvRefreshInterval   = "HIRETRACK_REFRESH_INTERVAL"
	EnvLogLevel          = "HIRETRACK_LOG_LEVEL"
	EnvLogFormat         = "HIRETRACK_LOG_FORMAT"
	EnvListenAddr        = "HIRETRACK_LISTEN_ADDR"
)

// Duration is a time.Duration that reads "30s" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds every runtime setting. All fields are optional; zero values
// are filled from Defaults.
type Config struct {
	// Remote backend
	APIBaseURL     string   `json:"api_base_url,omitempty"`
	RequestTimeout Duration `json:"request_timeout,omitempty"`

	// Local storage
	StorageDriver string `json:"storage_driver,omitempty"` // memory, sqlite, postgres or redis
	DSN           string `json:"dsn,omitempty"`            // file path or connection URL

	// DemoMode is the build-time force flag. Nil leaves the decision to the
	// runtime policy.
	DemoMode *bool `json:"demo_mode,omitempty"`

	InterviewCacheTTL Duration `json:"interview_cache_ttl,omitempty"`
	MockLatency       Duration `json:"mock_latency,omitempty"`
	RefreshInterval   Duration `json:"refresh_interval,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	// Stub backend
	ListenAddr string `json:"listen_addr,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		APIBaseURL:        "http://localhost:8080",
		RequestTimeout:    Duration(15 * time.Second),
		StorageDriver:     storage.DriverSQLite,
		DSN:               "hiretrack.db",
		InterviewCacheTTL: Duration(30 * time.Second),
		RefreshInterval:   Duration(60 * time.Second),
		LogLevel:          "info",
		LogFormat:         "text",
		ListenAddr:        ":8080",
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the HIRETRACK_* variables. Unset variables leave fields at
// their zero value.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    os.Getenv(EnvAPIBaseURL),
		StorageDriver: os.Getenv(EnvStorageDriver),
		DSN:           os.Getenv(EnvDSN),
		LogLevel:      os.Getenv(EnvLogLevel),
		LogFormat:     os.Getenv(EnvLogFormat),
		ListenAddr:    os.Getenv(EnvListenAddr),
	}

	force, err := ParseDemoFlag(os.Getenv(EnvDemoMode))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvDemoMode, err)
	}
	cfg.DemoMode = force

	durations := []struct {
		env string
		dst *Duration
	}{
		{EnvInterviewCacheTTL, &cfg.InterviewCacheTTL},
		{EnvMockLatency, &cfg.MockLatency},
		{EnvRequestTimeout, &cfg.RequestTimeout},
		{EnvRefreshInterval, &cfg.RefreshInterval},
	}
	for _, d := range durations {
		raw := strings.TrimSpace(os.Getenv(d.env))
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.env, err)
		}
		*d.dst = Duration(v)
	}

	return cfg, nil
}

// ParseDemoFlag parses a force flag value. An empty value means unset.
func ParseDemoFlag(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Load resolves settings from the environment, then the optional file at
// path, then Defaults, and validates the result.
func Load(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	merged := *env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged = merged.MergeWithDefaults(*file)
	}
	merged = merged.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.StorageDriver != "" {
		known := false
		for _, d := range storage.Drivers {
			if strings.EqualFold(c.StorageDriver, d) {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("config error: unknown storage_driver %q", c.StorageDriver)
		}
	}

	if c.InterviewCacheTTL < 0 {
		return fmt.Errorf("config error: 'interview_cache_ttl' must be non-negative")
	}
	if c.MockLatency < 0 {
		return fmt.Errorf("config error: 'mock_latency' must be non-negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config error: 'request_timeout' must be non-negative")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("config error: 'refresh_interval' must be non-negative")
	}

	if c.LogFormat != "" && !strings.EqualFold(c.LogFormat, "text") && !strings.EqualFold(c.LogFormat, "json") {
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.StorageDriver == "" {
		result.StorageDriver = defaults.StorageDriver
	}
	if result.DSN == "" {
		result.DSN = defaults.DSN
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.InterviewCacheTTL == 0 {
		result.InterviewCacheTTL = defaults.InterviewCacheTTL
	}
	if result.MockLatency == 0 {
		result.MockLatency = defaults.MockLatency
	}
	if result.RefreshInterval == 0 {
		result.RefreshInterval = defaults.RefreshInterval
	}

	if result.DemoMode == nil && defaults.DemoMode != nil {
		v := *defaults.DemoMode
		result.DemoMode = &v
	}

	return result
}
