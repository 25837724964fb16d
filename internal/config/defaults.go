package config

import "time"

// ApplyDefaults fills in zero-valued fields that have sensible defaults.
// Required fields with no safe default (database host, JWT secret, oracle URL)
// are left empty and caught by Validate.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 10 << 20
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.User == "" {
		c.Database.User = "talentmatch"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = 2
	}
	if c.Database.MaxConnIdle == 0 {
		c.Database.MaxConnIdle = 5 * time.Minute
	}
	if c.Database.MigrationDir == "" {
		c.Database.MigrationDir = "internal/infrastructure/database/postgres/migrations"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "talent"
	}
	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 10 * time.Minute
	}
	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 30 * time.Second
	}

	if c.Kafka.WriteTimeout == 0 {
		c.Kafka.WriteTimeout = 10 * time.Second
	}

	if c.Minio.Bucket == "" {
		c.Minio.Bucket = "talentmatch-resumes"
	}

	// The AI service accepts a connection quickly but may take up to a minute
	// to produce scores, so the read deadline is double the connect deadline.
	if c.Oracle.ConnectTimeout == 0 {
		c.Oracle.ConnectTimeout = 30 * time.Second
	}
	if c.Oracle.ReadTimeout == 0 {
		c.Oracle.ReadTimeout = 60 * time.Second
	}
	if c.Oracle.ParseTimeout == 0 {
		c.Oracle.ParseTimeout = 120 * time.Second
	}

	if c.Auth.Audience == "" {
		c.Auth.Audience = "talentmatch-api"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}
