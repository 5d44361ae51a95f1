package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/partpilot/internal/features"
)

// Config holds the partpilot configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	Lookup       LookupConfig       `yaml:"lookup"`
	Cache        CacheConfig        `yaml:"cache"`
	Connectivity ConnectivityConfig `yaml:"connectivity"`
	Session      SessionConfig      `yaml:"session"`
	Features     map[string]bool    `yaml:"features"`
	Affiliate    AffiliateConfig    `yaml:"affiliate"`
	Auth         AuthConfig         `yaml:"auth"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis, sqlite (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // sqlite file
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// LookupConfig holds the part-lookup provider settings.
type LookupConfig struct {
	Provider   string       `yaml:"provider"`
	APIKey     string       `yaml:"api_key"`
	BaseURL    string       `yaml:"base_url"`
	Model      string       `yaml:"model"`
	TimeoutSec int          `yaml:"timeout_sec"`
	Budget     BudgetConfig `yaml:"budget"`
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// CacheConfig holds offline cache settings.
type CacheConfig struct {
	Key        string `yaml:"key"`
	MaxEntries int    `yaml:"max_entries"`
}

// ConnectivityConfig holds connectivity probe settings.
type ConnectivityConfig struct {
	ProbeIntervalSec int   `yaml:"probe_interval_sec"` // 0 disables probing
	ForceOffline     *bool `yaml:"force_offline"`      // nil = follow the probe
}

// SessionConfig holds browsing session settings.
type SessionConfig struct {
	IdleTTLMin  int `yaml:"idle_ttl_min"`
	MaxSessions int `yaml:"max_sessions"`
}

// AffiliateConfig holds partner program IDs.
type AffiliateConfig struct {
	Amazon      string `yaml:"amazon"`
	EBay        string `yaml:"ebay"`
	AutoZone    string `yaml:"autozone"`
	AdvanceAuto string `yaml:"advance_auto"`
	CarID       string `yaml:"carid"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 90 // lookups take a while
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "partpilot.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Lookup.Provider == "" {
		c.Lookup.Provider = "openai"
	}
	if c.Lookup.Model == "" {
		c.Lookup.Model = "gpt-4o-mini"
	}
	if c.Lookup.TimeoutSec <= 0 {
		c.Lookup.TimeoutSec = 60
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 10
	}
	if c.Session.IdleTTLMin <= 0 {
		c.Session.IdleTTLMin = 120
	}
	if c.Session.MaxSessions <= 0 {
		c.Session.MaxSessions = 10000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "valkey", "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required")
		}
	case "sqlite":
	default:
		return fmt.Errorf("database.driver must be valkey, redis or sqlite, got %q", c.Database.Driver)
	}
	switch c.Lookup.Budget.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf(
			"lookup.budget.action must be \"warn\" or \"reject\", got %q", c.Lookup.Budget.Action,
		)
	}
	if c.Connectivity.ProbeIntervalSec < 0 {
		return fmt.Errorf("connectivity.probe_interval_sec must not be negative, got %d", c.Connectivity.ProbeIntervalSec)
	}
	if _, err := features.New(c.Features); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
