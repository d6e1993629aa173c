package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	// RateLimit is requests per minute per client IP on /api; 0 disables it.
	RateLimit int `mapstructure:"rate_limit"`
}

type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type QueueConfig struct {
	Key      string        `mapstructure:"key"`
	PopBlock time.Duration `mapstructure:"pop_block"`
}

type WorkerConfig struct {
	HeartbeatKey      string        `mapstructure:"heartbeat_key"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	HeartbeatTTL      time.Duration `mapstructure:"heartbeat_ttl"`
	DeadLetterKey     string        `mapstructure:"dead_letter_key"`
	MetricsAddr       string        `mapstructure:"metrics_addr"`
}

// Load reads defaults, then the optional config file, then the environment.
// Env names are the keys upper cased with dots as underscores, e.g.
// POSTGRES_DSN or WORKER_HEARTBEAT_INTERVAL.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.rate_limit", 100)
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 10)
	v.SetDefault("postgres.conn_max_lifetime", "30m")
	v.SetDefault("redis.url", "")
	v.SetDefault("queue.key", "events")
	v.SetDefault("queue.pop_block", "5s")
	v.SetDefault("worker.heartbeat_key", "pulseboard:worker:heartbeat")
	v.SetDefault("worker.heartbeat_interval", "10s")
	v.SetDefault("worker.heartbeat_ttl", "20s")
	v.SetDefault("worker.dead_letter_key", "")
	v.SetDefault("worker.metrics_addr", ":9091")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/pulseboard")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks what both processes need.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if c.Queue.Key == "" {
		return errors.New("queue.key must not be empty")
	}
	if c.HTTP.RateLimit < 0 {
		return errors.New("http.rate_limit must not be negative")
	}
	return nil
}

// ValidateWorker adds the checks that only the queue worker needs.
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Redis.URL == "" {
		return errors.New("redis.url is required for the worker")
	}
	if c.Worker.HeartbeatInterval <= 0 {
		return errors.New("worker.heartbeat_interval must be positive")
	}
	if c.Worker.HeartbeatTTL <= c.Worker.HeartbeatInterval {
		return fmt.Errorf("worker.heartbeat_ttl (%s) must be greater than worker.heartbeat_interval (%s)",
			c.Worker.HeartbeatTTL, c.Worker.HeartbeatInterval)
	}
	if c.Queue.PopBlock < time.Second {
		return errors.New("queue.pop_block must be at least 1s")
	}
	return nil
}
