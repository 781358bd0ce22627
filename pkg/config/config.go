package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nigelhorne/schema-validator/pkg/observability"
	"github.com/nigelhorne/schema-validator/pkg/report"
	"github.com/nigelhorne/schema-validator/pkg/vocabulary"
)

// Config holds all run configuration
type Config struct {
	// Vocabulary configuration
	Vocabulary VocabularyConfig `yaml:"vocabulary"`

	// Output configuration
	Output OutputConfig `yaml:"output"`

	// Dynamic enables vocabulary-backed checks without --dynamic
	Dynamic bool `yaml:"dynamic"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// VocabularyConfig holds vocabulary loader settings
type VocabularyConfig struct {
	URL          string        `yaml:"url"`
	CacheDir     string        `yaml:"cache_dir"`
	TTL          time.Duration `yaml:"ttl"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// RedisURL selects the shared Redis cache over the cache directory
	RedisURL string `yaml:"redis_url"`
}

// OutputConfig holds report destinations
type OutputConfig struct {
	SARIFPath   string `yaml:"sarif_path"`
	MetricsFile string `yaml:"metrics_file"`
}

// FileNames are searched in order by LoadFromDir
var FileNames = []string{
	".schema-validator.yaml",
	".schema-validator.yml",
	"schema-validator.yaml",
	"schema-validator.yml",
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Vocabulary: VocabularyConfig{
			URL:          vocabulary.DefaultURL,
			CacheDir:     defaultCacheDir(),
			TTL:          vocabulary.DefaultTTL,
			FetchTimeout: vocabulary.DefaultFetchTimeout,
		},
		Output: OutputConfig{
			SARIFPath: report.DefaultSARIFPath,
		},
		LogLevel: "warn",
	}
}

// defaultCacheDir is the per-user cache root, or the temp dir when the
// platform has none.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "schema-validator")
	}
	return filepath.Join(os.TempDir(), "schema-validator")
}

// Load reads the config file at path (or the first of FileNames in the
// working directory when path is empty), applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	var cfg *Config
	var err error
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = LoadFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile reads a YAML config file over the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir searches dir for a config file
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() {
	c.Vocabulary.CacheDir = getEnv("CACHE_DIR", c.Vocabulary.CacheDir)
	c.Vocabulary.URL = getEnv("SCHEMA_VALIDATOR_VOCABULARY_URL", c.Vocabulary.URL)
	c.Vocabulary.TTL = getEnvDuration("SCHEMA_VALIDATOR_CACHE_TTL", c.Vocabulary.TTL)
	c.Vocabulary.FetchTimeout = getEnvDuration("SCHEMA_VALIDATOR_FETCH_TIMEOUT", c.Vocabulary.FetchTimeout)
	c.Vocabulary.RedisURL = getEnv("SCHEMA_VALIDATOR_REDIS_URL", c.Vocabulary.RedisURL)
	c.Output.SARIFPath = getEnv("SCHEMA_VALIDATOR_SARIF_PATH", c.Output.SARIFPath)
	c.Output.MetricsFile = getEnv("SCHEMA_VALIDATOR_METRICS_FILE", c.Output.MetricsFile)
	c.Dynamic = getEnvBool("SCHEMA_VALIDATOR_DYNAMIC", c.Dynamic)
	c.LogLevel = getEnv("SCHEMA_VALIDATOR_LOG_LEVEL", c.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	u, err := url.Parse(c.Vocabulary.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("vocabulary URL must be an http(s) URL: %q", c.Vocabulary.URL)
	}
	if c.Vocabulary.CacheDir == "" && c.Vocabulary.RedisURL == "" {
		return fmt.Errorf("cache directory is required")
	}
	if c.Vocabulary.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.Vocabulary.TTL)
	}
	if c.Vocabulary.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.Vocabulary.FetchTimeout)
	}
	if c.Vocabulary.RedisURL != "" && !strings.HasPrefix(c.Vocabulary.RedisURL, "redis://") &&
		!strings.HasPrefix(c.Vocabulary.RedisURL, "rediss://") {
		return fmt.Errorf("redis URL must use redis:// or rediss://: %q", c.Vocabulary.RedisURL)
	}
	if c.Output.SARIFPath == "" {
		return fmt.Errorf("SARIF output path is required")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Level returns the parsed log level
func (c *Config) Level() observability.LogLevel {
	return observability.ParseLogLevel(c.LogLevel)
}

// LoaderConfig converts the vocabulary settings for the loader
func (c *Config) LoaderConfig() *vocabulary.Config {
	lc := vocabulary.DefaultConfig()
	lc.URL = c.Vocabulary.URL
	lc.TTL = c.Vocabulary.TTL
	lc.FetchTimeout = c.Vocabulary.FetchTimeout
	return lc
}
