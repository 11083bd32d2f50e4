// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/taskpilot-inc/taskpilot/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	OAuth    sharedConfig.OAuthConfig    `mapstructure:"oauth"`
	Sharing  sharedConfig.SharingConfig  `mapstructure:"sharing"`
	Telegram sharedConfig.TelegramConfig `mapstructure:"telegram"`
	Email    sharedConfig.EmailConfig    `mapstructure:"email"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("TASKPILOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env cover dev and test.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Per-environment overrides, e.g. configs/config.production.yaml.
	if env != "" && env != "default" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read %s config file: %w", env, err)
			}
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "taskpilot.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "taskpilot_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 15)

	// OAuth defaults (empty by default, must be configured)
	viper.SetDefault("oauth.todoist.client_id", "")
	viper.SetDefault("oauth.todoist.client_secret", "")
	viper.SetDefault("oauth.todoist.redirect_url", "http://localhost:8080/oauth/callback")
	viper.SetDefault("oauth.google_calendar.client_id", "")
	viper.SetDefault("oauth.google_calendar.client_secret", "")
	viper.SetDefault("oauth.google_calendar.redirect_url", "http://localhost:8080/oauth/callback")

	// Sharing lifecycle defaults
	viper.SetDefault("sharing.auth_request_ttl_hours", 24)
	viper.SetDefault("sharing.oauth_state_ttl_minutes", 60)
	viper.SetDefault("sharing.sweep_interval_minutes", 10)

	// Notification defaults
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "noreply@taskpilot.local")
	viper.SetDefault("email.from_name", "TaskPilot")
}
