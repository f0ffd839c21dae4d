// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"emi-calculator/domain"
	"emi-calculator/service"
)

// FileEnvVar names the variable holding the optional YAML config path.
const FileEnvVar = "EMI_CONFIG_FILE"

type Config struct {
	HTTPAddr           string         `yaml:"http_addr" env:"HTTP_ADDR"`
	LogLevel           string         `yaml:"log_level" env:"LOG_LEVEL"`
	RateLimitPerMinute int            `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
	RateLimitBurst     int            `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	SessionTTL         time.Duration  `yaml:"session_ttl" env:"SESSION_TTL"`
	CacheTTL           time.Duration  `yaml:"cache_ttl" env:"CACHE_TTL"`
	Redis              RedisConfig    `yaml:"redis" envPrefix:"REDIS_"`
	Defaults           DefaultsConfig `yaml:"defaults" envPrefix:"DEFAULT_"`
}

// RedisConfig is optional; an empty Addr selects the in-memory cache.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// DefaultsConfig holds the parameters every new calculator starts from.
type DefaultsConfig struct {
	Principal         float64 `yaml:"principal" env:"PRINCIPAL"`
	AnnualRatePercent float64 `yaml:"annual_rate_percent" env:"RATE"`
	TermYears         int     `yaml:"term_years" env:"TERM_YEARS"`
}

func (d DefaultsConfig) Parameters() domain.LoanParameters {
	return domain.LoanParameters{
		Principal:         d.Principal,
		AnnualRatePercent: d.AnnualRatePercent,
		TermYears:         d.TermYears,
	}
}

func Default() Config {
	return Config{
		HTTPAddr:           ":8080",
		LogLevel:           "info",
		RateLimitPerMinute: 60,
		RateLimitBurst:     10,
		SessionTTL:         30 * time.Minute,
		CacheTTL:           10 * time.Minute,
		Defaults: DefaultsConfig{
			Principal:         service.DefaultPrincipal,
			AnnualRatePercent: service.DefaultRate,
			TermYears:         service.DefaultTermYears,
		},
	}
}

// Load builds the config from defaults, the file named by EMI_CONFIG_FILE
// (if any) and the environment, then validates it.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http_addr is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be positive, got %d", c.RateLimitBurst)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative, got %s", c.CacheTTL)
	}
	if err := service.ValidateParameters(c.Defaults.Parameters()); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}
