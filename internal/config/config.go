// Package config loads and validates maman configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper. Every value can
// be supplied through the environment with the MAMAN_ prefix, so MAMAN_ENV
// selects the environment name used in the queue name.
type Config struct {
	Env     string        `mapstructure:"env"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RedisConfig locates the queue broker.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
}

// CrawlerConfig governs the crawl pipeline.
type CrawlerConfig struct {
	Concurrency  int    `mapstructure:"concurrency"`
	StrictOrigin bool   `mapstructure:"strict_origin"`
	UserAgent    string `mapstructure:"user_agent"`
}

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// MetricsConfig controls the optional ops endpoint. An empty listen address
// disables it.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MAMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("crawler.concurrency", 1)
	v.SetDefault("crawler.strict_origin", false)
	v.SetDefault("crawler.user_agent", "maman/1.0 (+https://github.com/maman-crawler/maman)")
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("metrics.listen", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Env == "" {
		return fmt.Errorf("env must not be empty")
	}
	if c.Crawler.Concurrency <= 0 {
		return fmt.Errorf("crawler.concurrency must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	return nil
}

// QueueName returns the Sidekiq list the crawler publishes to.
func (c Config) QueueName() string {
	return fmt.Sprintf("%s:queue:maman", c.Env)
}

// FetchTimeout converts the HTTP timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
