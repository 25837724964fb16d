// Package config defines the application configuration model and its loading
// rules.  Configuration is read from a YAML file, overridden by environment
// variables with the TALENT_ prefix, and validated before use.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for all TalentMatch-AI processes.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Minio    MinioConfig    `mapstructure:"minio"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig controls the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	Name         string        `mapstructure:"name"`
	SSLMode      string        `mapstructure:"ssl_mode"`
	MaxConns     int32         `mapstructure:"max_conns"`
	MinConns     int32         `mapstructure:"min_conns"`
	MaxConnIdle  time.Duration `mapstructure:"max_conn_idle"`
	MigrationDir string        `mapstructure:"migration_dir"`
}

// DSN returns the pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// RedisConfig controls the Redis client used for caching and distributed locks.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	LockTTL   time.Duration `mapstructure:"lock_ttl"`
}

// KafkaConfig controls the domain-event producer.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// Enabled gates event publication entirely; disabled in local development.
	Enabled bool `mapstructure:"enabled"`
}

// MinioConfig controls the object store holding raw resume files.
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

// OracleConfig controls the AI scoring service client.
type OracleConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// ConnectTimeout bounds TCP connection establishment.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	// ReadTimeout bounds the whole request including response body read.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// ParseTimeout is the longer deadline used for resume parsing uploads.
	ParseTimeout time.Duration `mapstructure:"parse_timeout"`
}

// AuthConfig controls JWT verification.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Audience  string        `mapstructure:"audience"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Development bool   `mapstructure:"development"`
}

// Validate checks semantic constraints that zero values cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns %d < min_conns %d",
			c.Database.MaxConns, c.Database.MinConns)
	}
	if c.Oracle.BaseURL == "" {
		return fmt.Errorf("oracle.base_url is required")
	}
	if c.Oracle.ConnectTimeout <= 0 || c.Oracle.ReadTimeout <= 0 {
		return fmt.Errorf("oracle timeouts must be positive")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required when kafka is enabled")
	}
	return nil
}
