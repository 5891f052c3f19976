package config

import (
	"github.com/garyjia/badge-intake/internal/notification"
	"github.com/garyjia/badge-intake/internal/validation"
	"github.com/garyjia/badge-intake/pkg/utils"
)

// ToNotificationConfig converts the notification section for notification.New
func (c *Config) ToNotificationConfig() notification.Config {
	return notification.Config{
		Provider: c.Notification.Provider,
		Timeout:  c.Notification.Timeout,
		Telegram: notification.TelegramConfig{
			BotToken: c.Notification.Telegram.BotToken,
			ChatID:   c.Notification.Telegram.ChatID,
			APIBase:  c.Notification.Telegram.APIBase,
		},
		Lark: notification.LarkConfig{
			AppID:         c.Notification.Lark.AppID,
			AppSecret:     c.Notification.Lark.AppSecret,
			ReceiveID:     c.Notification.Lark.ReceiveID,
			ReceiveIDType: c.Notification.Lark.ReceiveIDType,
		},
	}
}

// ToDocumentRules converts the documents section for validation.New
func (c *Config) ToDocumentRules() validation.DocumentRules {
	return validation.DocumentRules{
		MaxSize:      c.Documents.MaxSizeBytes,
		AllowedTypes: c.Documents.AllowedTypes,
	}
}

// ToLoggerConfig converts the logger section for utils.NewLogger
func (c *Config) ToLoggerConfig() utils.LoggerConfig {
	return utils.LoggerConfig{
		Level:      c.Logger.Level,
		OutputPath: c.Logger.OutputPath,
		Format:     c.Logger.Format,
	}
}
