package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// DotEnvFile is loaded into the environment, when present, before env bindings apply
const DotEnvFile = ".env"

// Config holds all application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Documents    DocumentsConfig    `mapstructure:"documents"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"` // gin mode: debug, release or test
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// DocumentsConfig constrains attached documents
type DocumentsConfig struct {
	MaxSizeBytes int      `mapstructure:"max_size_bytes"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// NotificationConfig selects the export notification relay
type NotificationConfig struct {
	Provider string         `mapstructure:"provider"` // none, telegram or lark
	Timeout  time.Duration  `mapstructure:"timeout"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Lark     LarkConfig     `mapstructure:"lark"`
}

// TelegramConfig holds Telegram bot credentials
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// LarkConfig holds Lark API configuration
type LarkConfig struct {
	AppID         string `mapstructure:"app_id"`
	AppSecret     string `mapstructure:"app_secret"`
	ReceiveID     string `mapstructure:"receive_id"`
	ReceiveIDType string `mapstructure:"receive_id_type"`
}

// Load loads configuration from an optional YAML file, a .env file and environment variables
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file; a missing file leaves defaults and environment in charge
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv copies KEY=value pairs from path into the process environment
// without overriding variables that are already set
func loadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_bytes", 512<<20)

	// Document defaults
	v.SetDefault("documents.max_size_bytes", 10_000_000)
	v.SetDefault("documents.allowed_types", []string{"image/jpeg", "image/png", "image/gif"})

	// Notification defaults
	v.SetDefault("notification.provider", "none")
	v.SetDefault("notification.timeout", 10*time.Second)
	v.SetDefault("notification.telegram.api_base", "https://api.telegram.org")
	v.SetDefault("notification.lark.receive_id_type", "chat_id")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	// Sensitive credentials from environment
	v.BindEnv("notification.telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("notification.telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("notification.lark.app_id", "LARK_APP_ID")
	v.BindEnv("notification.lark.app_secret", "LARK_APP_SECRET")
	v.BindEnv("notification.lark.receive_id", "LARK_RECEIVE_ID")
	v.BindEnv("notification.provider", "NOTIFICATION_PROVIDER")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("logger.level", "LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	if c.Documents.MaxSizeBytes <= 0 {
		return fmt.Errorf("documents.max_size_bytes must be positive")
	}
	if len(c.Documents.AllowedTypes) == 0 {
		return fmt.Errorf("documents.allowed_types must not be empty")
	}

	// Validate notification credentials for the selected provider
	switch c.Notification.Provider {
	case "", "none":
	case "telegram":
		if c.Notification.Telegram.BotToken == "" {
			return fmt.Errorf("notification.telegram.bot_token is required")
		}
		if c.Notification.Telegram.ChatID == "" {
			return fmt.Errorf("notification.telegram.chat_id is required")
		}
	case "lark":
		if c.Notification.Lark.AppID == "" {
			return fmt.Errorf("notification.lark.app_id is required")
		}
		if c.Notification.Lark.AppSecret == "" {
			return fmt.Errorf("notification.lark.app_secret is required")
		}
		if c.Notification.Lark.ReceiveID == "" {
			return fmt.Errorf("notification.lark.receive_id is required")
		}
	default:
		return fmt.Errorf("notification.provider must be none, telegram or lark, got %q", c.Notification.Provider)
	}

	return nil
}
