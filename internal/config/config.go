package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/ftquery/internal/db"
)

// Config holds the ftquery API configuration.
type Config struct {
	HTTP     HTTPConfig             `yaml:"http"`
	Database DatabaseConfig         `yaml:"database"`
	Auth     AuthConfig             `yaml:"auth"`
	Logging  LoggingConfig          `yaml:"logging"`
	Query    QueryConfig            `yaml:"query"`
	Indexes  map[string]IndexConfig `yaml:"indexes"`
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
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	MaxResults       int      `yaml:"max_results"` // LIMIT sent for searches without a limit
}

// QueryConfig holds request limits for the HTTP API.
type QueryConfig struct {
	DefaultLimit int `yaml:"default_limit"` // applied when a search request sets no limit
	MaxLimit     int `yaml:"max_limit"`
}

// IndexConfig describes one existing search index.
type IndexConfig struct {
	KeyPrefix  string            `yaml:"key_prefix"`
	PrimaryKey string            `yaml:"primary_key"`
	Fields     map[string]string `yaml:"fields"` // field -> tag | numeric | text
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration document.
func Parse(data []byte) (Config, error) {
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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.MaxResults <= 0 {
		c.Database.MaxResults = 10000
	}
	if c.Query.MaxLimit <= 0 {
		c.Query.MaxLimit = 1000
	}
	if c.Query.DefaultLimit <= 0 {
		c.Query.DefaultLimit = 20
	}
	for name, idx := range c.Indexes {
		if idx.PrimaryKey == "" {
			idx.PrimaryKey = "id"
			c.Indexes[name] = idx
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Query.DefaultLimit > c.Query.MaxLimit {
		return fmt.Errorf("query.default_limit (%d) exceeds query.max_limit (%d)",
			c.Query.DefaultLimit, c.Query.MaxLimit)
	}
	if len(c.Indexes) == 0 {
		return errors.New("at least one index must be configured")
	}
	if _, err := c.Schemas(); err != nil {
		return err
	}
	return nil
}

// IndexNames returns the configured index names in sorted order.
func (c *Config) IndexNames() []string {
	names := make([]string, 0, len(c.Indexes))
	for name := range c.Indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas converts the configured indexes into query schemas, sorted by name.
func (c *Config) Schemas() ([]*db.Schema, error) {
	schemas := make([]*db.Schema, 0, len(c.Indexes))
	for _, name := range c.IndexNames() {
		idx := c.Indexes[name]
		b := db.NewSchema(name).Prefix(idx.KeyPrefix)
		if idx.PrimaryKey != "" {
			b.PrimaryKey(idx.PrimaryKey)
		}
		for field, typ := range idx.Fields {
			ft, err := db.ParseFieldType(typ)
			if err != nil {
				return nil, fmt.Errorf("indexes.%s.fields.%s: %w", name, field, err)
			}
			b.Field(field, ft)
		}
		s, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("indexes.%s: %w", name, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
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
