package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Exmoflow ExmoflowConfig `yaml:"exmoflow"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ExmoflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type ExchangeConfig struct {
	BaseURL    string          `yaml:"base_url"`
	APIVersion string          `yaml:"api_version"`
	Timeout    Duration        `yaml:"timeout"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// LoadConfig reads a YAML configuration file from the specified path,
// applies defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration populated with defaults only.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Exmoflow.Name == "" {
		c.Exmoflow.Name = "exmoflow"
	}
	if c.Exchange.BaseURL == "" {
		c.Exchange.BaseURL = "https://api.exmo.com"
	}
	if c.Exchange.APIVersion == "" {
		c.Exchange.APIVersion = "v1"
	}
	if c.Exchange.Timeout <= 0 {
		c.Exchange.Timeout = Duration(10 * time.Second)
	}
	// EXMO allows roughly one request per 350ms on the v1 API.
	if c.Exchange.RateLimit.RequestsPerSecond <= 0 {
		c.Exchange.RateLimit.RequestsPerSecond = 3
	}
	if c.Exchange.RateLimit.BurstSize <= 0 {
		c.Exchange.RateLimit.BurstSize = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

func (c *Config) validate() error {
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url must not be empty")
	}
	if c.Exchange.Timeout <= 0 {
		return fmt.Errorf("exchange.timeout must be positive")
	}
	return nil
}
