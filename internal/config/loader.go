package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
)

const envPrefix = "TALENT"

// Load reads configuration from path (optional), layers TALENT_* environment
// variables on top, applies defaults, and validates the result.
//
// Environment keys replace dots with underscores: database.host becomes
// TALENT_DATABASE_HOST.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeConfigError, "read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeConfigError, "unmarshal config")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeConfigError, "validate config")
	}
	return cfg, nil
}

// MustLoad is Load that terminates the process on failure. Intended only for
// main functions.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		logging.Default().Fatal("configuration load failed",
			logging.String("path", path), logging.Err(err))
	}
	return cfg
}

// Watch re-reads the config file on change and invokes onChange with the new
// validated configuration. Invalid updates are logged and skipped, keeping the
// last good configuration active.
func Watch(path string, log logging.Logger, onChange func(*Config)) error {
	if path == "" {
		return appErrors.New(appErrors.ErrCodeConfigError, "watch requires a config file path")
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeConfigError, "read config file")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Warn("config reload failed, keeping previous",
				logging.String("file", e.Name), logging.Err(err))
			return
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			log.Warn("config reload invalid, keeping previous",
				logging.String("file", e.Name), logging.Err(err))
			return
		}
		log.Info("configuration reloaded", logging.String("file", e.Name))
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
