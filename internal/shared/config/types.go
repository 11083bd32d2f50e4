// Package config defines the configuration structures shared across layers.
package config

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"` // debug, release, test
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds relational database settings.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql or sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"` // sqlite file path
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // console or json
	OutputPath string `mapstructure:"output_path"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds principal authentication settings.
type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds JWT verification settings for the HTTP layer.
type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

// OAuthProviderConfig holds per-platform OAuth client settings.
type OAuthProviderConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// OAuthConfig holds OAuth client settings for each task platform.
type OAuthConfig struct {
	Todoist        OAuthProviderConfig `mapstructure:"todoist"`
	GoogleCalendar OAuthProviderConfig `mapstructure:"google_calendar"`
}

// SharingConfig holds delegation lifecycle settings.
type SharingConfig struct {
	AuthRequestTTLHours  int `mapstructure:"auth_request_ttl_hours"`
	OAuthStateTTLMinutes int `mapstructure:"oauth_state_ttl_minutes"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

// TelegramConfig holds the notification bot settings.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

// EmailConfig holds SMTP settings for email notifications.
type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}
