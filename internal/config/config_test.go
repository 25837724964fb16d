package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := &Config{}
	c.ApplyDefaults()
	c.Database.Host = "localhost"
	c.Database.Name = "talentmatch"
	c.Oracle.BaseURL = "http://localhost:8000"
	c.Auth.JWTSecret = "test-secret"
	return c
}

func TestApplyDefaults(t *testing.T) {
	c := &Config{}
	c.ApplyDefaults()

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", c.Server.Addr())
	assert.Equal(t, 30*time.Second, c.Oracle.ConnectTimeout)
	assert.Equal(t, 60*time.Second, c.Oracle.ReadTimeout)
	assert.Equal(t, "talent", c.Redis.KeyPrefix)
	assert.Equal(t, "talentmatch-resumes", c.Minio.Bucket)
	assert.Equal(t, int64(10<<20), c.Server.MaxUploadBytes)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := &Config{}
	c.Server.Port = 9000
	c.Oracle.ReadTimeout = 5 * time.Second
	c.ApplyDefaults()
	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, 5*time.Second, c.Oracle.ReadTimeout)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})
	t.Run("missing database host", func(t *testing.T) {
		c := validConfig()
		c.Database.Host = ""
		assert.Error(t, c.Validate())
	})
	t.Run("missing oracle url", func(t *testing.T) {
		c := validConfig()
		c.Oracle.BaseURL = ""
		assert.Error(t, c.Validate())
	})
	t.Run("missing jwt secret", func(t *testing.T) {
		c := validConfig()
		c.Auth.JWTSecret = ""
		assert.Error(t, c.Validate())
	})
	t.Run("max conns below min", func(t *testing.T) {
		c := validConfig()
		c.Database.MaxConns = 1
		c.Database.MinConns = 5
		assert.Error(t, c.Validate())
	})
	t.Run("kafka enabled without brokers", func(t *testing.T) {
		c := validConfig()
		c.Kafka.Enabled = true
		c.Kafka.Brokers = nil
		assert.Error(t, c.Validate())
	})
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "talent", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/talent?sslmode=disable", c.DSN())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 8181
database:
  host: dbhost
  name: talent
oracle:
  base_url: http://oracle:8000
auth:
  jwt_secret: file-secret
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("TALENT_DATABASE_HOST", "env-override")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "env-override", cfg.Database.Host)
	assert.Equal(t, "http://oracle:8000", cfg.Oracle.BaseURL)
	// Defaults layered under file values.
	assert.Equal(t, 60*time.Second, cfg.Oracle.ReadTimeout)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 70000\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
