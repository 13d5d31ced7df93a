package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL              = "https://picketapi.com/api/v1"
	DefaultUserAgent            = "Picket Go Client"
	DefaultRequestTimeoutMillis = 10000
	DefaultLogLevel             = "info"
)

// Config holds the client configuration.
type Config struct {
	APIKey               string        `yaml:"apiKey" envconfig:"API_KEY"`
	BaseURL              string        `yaml:"baseURL" envconfig:"BASE_URL"`
	UserAgent            string        `yaml:"userAgent" envconfig:"USER_AGENT"`
	RequestTimeoutMillis int64         `yaml:"requestTimeoutMillis" envconfig:"REQUEST_TIMEOUT_MILLIS"`
	Logging              LoggingConfig `yaml:"logging" envconfig:"LOG"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"` // e.g., "debug", "info", "warn", "error"
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading Picket client configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// LoadFromEnv reads PICKET_* environment variables. When envFile is set it is loaded
// first and overrides the process environment; otherwise a ./.env file is used if present.
func LoadFromEnv(envFile string) (*Config, error) {
	if err := loadEnvironment(envFile); err != nil {
		return nil, fmt.Errorf("failed to load environment file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("picket", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvironment(filename string) error {
	var err error
	if filename != "" {
		err = godotenv.Overload(filename)
	} else {
		err = godotenv.Load()
		if os.IsNotExist(err) {
			return nil
		}
	}
	return err
}

func (c *Config) finalize() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		return fmt.Errorf("apiKey is required")
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
		logrus.Infof("BaseURL not set, defaulting to %s", c.BaseURL)
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.RequestTimeoutMillis <= 0 {
		c.RequestTimeoutMillis = DefaultRequestTimeoutMillis
		logrus.Infof("RequestTimeoutMillis not set, defaulting to %d ms", c.RequestTimeoutMillis)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	return nil
}

// Build creates a production zap logger at the configured level.
func (l LoggingConfig) Build() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	return zapCfg.Build()
}
