package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cash    CashConfig    `mapstructure:"cash"`
	Search  SearchConfig  `mapstructure:"search"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

type CatalogConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type CashConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type SearchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type AuthConfig struct {
	Token string `mapstructure:"token"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the YAML config file and applies POS_* environment overrides
// (POS_AUTH_TOKEN being the usual one, so tokens stay out of files).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("search.debounce_ms", 180)
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("metrics.addr", ":9190")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("pos")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Catalog.BaseURL == "" {
		return nil, fmt.Errorf("catalog.base_url is required")
	}
	if cfg.Cash.BaseURL == "" {
		return nil, fmt.Errorf("cash.base_url is required")
	}
	return &cfg, nil
}
