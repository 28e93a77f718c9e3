// Package config loads application configuration from environment
// variables and an optional YAML file, and resolves the data
// directory layout.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for all environment overrides, e.g.
// DSCAT_SERVER_PORT.
const EnvPrefix = "DSCAT"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	ProcessTimeout  time.Duration `yaml:"process_timeout" envconfig:"PROCESS_TIMEOUT" default:"5m"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/dscat.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	SourcesDir  string `yaml:"sources_dir" envconfig:"SOURCES_DIR" default:"data/sources"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
	CatalogFile string `yaml:"catalog_file" envconfig:"CATALOG_FILE" default:"data/catalog.yml"`
}

// Load loads configuration from environment variables and, when
// present, the config file. Explicitly set environment variables take
// precedence over file values; file values take precedence over
// defaults.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints via struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays file values onto the env-derived config.
// envconfig fills `default:` tags before the file is read, so a plain
// zero-value check would let defaults shadow the file; instead a file
// value wins whenever its environment variable was not explicitly set.
// Boolean flags cannot distinguish "absent" from "false" in YAML and
// keep following env/defaults.
func mergeConfigs(fileCfg, envCfg Config) Config {
	overlay(&envCfg.Server.Port, fileCfg.Server.Port, "SERVER_PORT")
	overlay(&envCfg.Server.ReadTimeout, fileCfg.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	overlay(&envCfg.Server.WriteTimeout, fileCfg.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	overlay(&envCfg.Server.IdleTimeout, fileCfg.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT")
	overlay(&envCfg.Server.ShutdownTimeout, fileCfg.Server.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT")
	overlay(&envCfg.Server.ProcessTimeout, fileCfg.Server.ProcessTimeout, "SERVER_PROCESS_TIMEOUT")
	overlay(&envCfg.Security.RateLimit.RPS, fileCfg.Security.RateLimit.RPS, "SECURITY_RATE_LIMIT_RPS")
	overlay(&envCfg.Security.RateLimit.Burst, fileCfg.Security.RateLimit.Burst, "SECURITY_RATE_LIMIT_BURST")
	overlay(&envCfg.Logging.Level, fileCfg.Logging.Level, "LOGGING_LEVEL")
	overlay(&envCfg.Logging.Format, fileCfg.Logging.Format, "LOGGING_FORMAT")
	overlay(&envCfg.Logging.Output, fileCfg.Logging.Output, "LOGGING_OUTPUT")
	overlay(&envCfg.Logging.FilePath, fileCfg.Logging.FilePath, "LOGGING_FILE_PATH")
	overlay(&envCfg.Paths.DataDir, fileCfg.Paths.DataDir, "PATHS_DATA_DIR")
	overlay(&envCfg.Paths.SourcesDir, fileCfg.Paths.SourcesDir, "PATHS_SOURCES_DIR")
	overlay(&envCfg.Paths.ReportsDir, fileCfg.Paths.ReportsDir, "PATHS_REPORTS_DIR")
	overlay(&envCfg.Paths.LogsDir, fileCfg.Paths.LogsDir, "PATHS_LOGS_DIR")
	overlay(&envCfg.Paths.CatalogFile, fileCfg.Paths.CatalogFile, "PATHS_CATALOG_FILE")
	return envCfg
}

// overlay replaces *dst with the file value when the file set one and
// the corresponding environment variable was not.
func overlay[T comparable](dst *T, fileVal T, envKey string) {
	var zero T
	if fileVal == zero {
		return
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_" + envKey); ok {
		return
	}
	*dst = fileVal
}

// getConfigFilePath returns the config file location: DSCAT_CONFIG if
// set, otherwise dscat.yml next to the executable.
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}
	exeDir, err := ExecutableDir()
	if err != nil {
		return "dscat.yml"
	}
	return filepath.Join(exeDir, "dscat.yml")
}
