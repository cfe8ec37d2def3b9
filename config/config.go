package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// IsValid reports whether the environment is one of the known values.
func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}

// DefaultEnvFile is read when GRADEBOOK_ENV_FILE is not set.
const DefaultEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Feature Flags
	Features *FeatureFlags

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Version     string

	// EnvFile is the dotenv file that was loaded, empty if none was found.
	EnvFile string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
	LogOutput string // stderr, discard
}

// Load loads configuration from environment variables.
// Values from the dotenv file never override variables already set.
func Load() (*Config, error) {
	envFile, err := loadEnvFile()
	if err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}

	cfg := &Config{}

	cfg.App = loadAppConfig()
	cfg.App.EnvFile = envFile

	cfg.Features = LoadFeatureFlags()

	cfg.Observability = loadObservabilityConfig()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadEnvFile reads GRADEBOOK_ENV_FILE (or .env). A missing default file is
// fine; a missing file that was asked for explicitly is not.
func loadEnvFile() (string, error) {
	path, explicit := os.LookupEnv("GRADEBOOK_ENV_FILE")
	if !explicit || path == "" {
		path = DefaultEnvFile
		explicit = false
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return path, nil
}

func loadAppConfig() AppConfig {
	return AppConfig{
		Name:        getEnv("APP_NAME", "gradebook"),
		Environment: Environment(getEnv("APP_ENV", string(EnvDevelopment))),
		Version:     getEnv("APP_VERSION", "0.1.0"),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogOutput: getEnv("LOG_OUTPUT", "stderr"),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if !c.App.Environment.IsValid() {
		errs = append(errs, fmt.Sprintf("APP_ENV must be one of development, staging, production (got %q)", c.App.Environment))
	}

	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be debug, info, warn or error (got %q)", c.Observability.LogLevel))
	}

	switch strings.ToLower(c.Observability.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or text (got %q)", c.Observability.LogFormat))
	}

	switch strings.ToLower(c.Observability.LogOutput) {
	case "stderr", "discard":
	default:
		errs = append(errs, fmt.Sprintf("LOG_OUTPUT must be stderr or discard (got %q)", c.Observability.LogOutput))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
