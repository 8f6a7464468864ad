package connector

import (
	"errors"
	"fmt"
	"time"

	"github.com/Konsultn-Engineering/sqlbuild/dialect"
)

// Config represents database connection configuration.
type Config struct {
	Driver         string            `koanf:"driver" yaml:"driver"`
	Dialect        string            `koanf:"dialect" yaml:"dialect"`
	Host           string            `koanf:"host" yaml:"host"`
	Port           int               `koanf:"port" yaml:"port"`
	Database       string            `koanf:"database" yaml:"database"`
	Username       string            `koanf:"username" yaml:"username"`
	Password       string            `koanf:"password" yaml:"password"`
	SSLMode        string            `koanf:"ssl_mode" yaml:"ssl_mode"`
	Params         map[string]string `koanf:"params" yaml:"params"`
	Pool           PoolConfig        `koanf:"pool" yaml:"pool"`
	Cache          CacheConfig       `koanf:"cache" yaml:"cache"`
	ConnectTimeout time.Duration     `koanf:"connect_timeout" yaml:"connect_timeout"`
	Retry          *RetryConfig      `koanf:"retry" yaml:"retry,omitempty"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen     int           `koanf:"max_open" yaml:"max_open"`
	MaxIdle     int           `koanf:"max_idle" yaml:"max_idle"`
	MaxLifetime time.Duration `koanf:"max_lifetime" yaml:"max_lifetime"`
	MaxIdleTime time.Duration `koanf:"max_idle_time" yaml:"max_idle_time"`
}

// CacheConfig sizes the compiled-query and prepared-statement caches.
// Zero disables a cache.
type CacheConfig struct {
	Queries    int `koanf:"queries" yaml:"queries"`
	Statements int `koanf:"statements" yaml:"statements"`
}

// RetryConfig defines connection retry behavior.
type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries" yaml:"max_retries"`
	BaseDelay  time.Duration `koanf:"base_delay" yaml:"base_delay"`
	MaxDelay   time.Duration `koanf:"max_delay" yaml:"max_delay"`
	Backoff    float64       `koanf:"backoff" yaml:"backoff"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverPgx
	}
	if c.Dialect == "" {
		c.Dialect = "postgres"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "prefer"
	}
	if c.Pool.MaxOpen <= 0 {
		c.Pool.MaxOpen = 10
	}
	if c.Pool.MaxIdle < 0 {
		c.Pool.MaxIdle = 0
	}
	if c.Pool.MaxLifetime == 0 {
		c.Pool.MaxLifetime = time.Hour
	}
	if c.Pool.MaxIdleTime == 0 {
		c.Pool.MaxIdleTime = 30 * time.Minute
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.Retry != nil {
		c.Retry.applyDefaults()
	}
}

func (r *RetryConfig) applyDefaults() {
	if r.MaxRetries <= 0 {
		r.MaxRetries = 3
	}
	if r.BaseDelay <= 0 {
		r.BaseDelay = time.Second
	}
	if r.Backoff < 1 {
		r.Backoff = 2
	}
}

// Validate checks the fields a connection needs.
// ErrInvalidConfig wraps every error Validate reports when connecting.
var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Pool.MaxIdle > c.Pool.MaxOpen {
		return fmt.Errorf("pool max_idle (%d) exceeds max_open (%d)", c.Pool.MaxIdle, c.Pool.MaxOpen)
	}
	if _, err := dialect.ByName(c.Dialect); err != nil {
		return err
	}
	return nil
}

// DSN renders the connection URL.
func (c *Config) DSN() string {
	return NewDSNBuilder("postgres").
		Auth(c.Username, c.Password).
		Host(c.Host, c.Port).
		Database(c.Database).
		Param("sslmode", c.SSLMode).
		Params(c.Params).
		Build()
}
