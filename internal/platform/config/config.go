package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process level configuration.
type Server struct {
	Addr          string        `env:"VINKIT_ADDR" envDefault:":8080"`
	ShutdownGrace time.Duration `env:"VINKIT_SHUTDOWN_GRACE" envDefault:"10s"`
	ReadTimeout   time.Duration `env:"VINKIT_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout  time.Duration `env:"VINKIT_WRITE_TIMEOUT" envDefault:"10s"`

	Log      LogConfig
	WMI      WMIConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"
}

// WMIConfig tunes manufacturer name resolution.
type WMIConfig struct {
	Namespace     string        `env:"WMI_NAMESPACE" envDefault:"VIN"`
	DefaultLocale string        `env:"WMI_DEFAULT_LOCALE" envDefault:"en"`
	CacheTTL      time.Duration `env:"WMI_CACHE_TTL" envDefault:"5m"`
}

// RedisConfig configures the optional shared WMI cache. Empty URL disables it.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// PostgresConfig configures the optional WMI name table. Empty DSN disables it.
type PostgresConfig struct {
	DSN          string `env:"DATABASE_URL"`
	MaxOpenConns int    `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int    `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WMI.CacheTTL <= 0 {
		return Server{}, fmt.Errorf("WMI_CACHE_TTL must be positive")
	}
	return cfg, nil
}
