// Package notification relays export events to a messaging service.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Supported providers
const (
	ProviderNone     = "none"
	ProviderTelegram = "telegram"
	ProviderLark     = "lark"
)

var (
	ErrUnknownProvider = errors.New("unknown notification provider")
	ErrMissingSetting  = errors.New("notification provider is missing a required setting")
	ErrEmptyMessage    = errors.New("notification message is empty")
)

// Message is one outbound notification
type Message struct {
	Text        string
	RequestType string // e.g. "Personal Badge"
	Timestamp   time.Time
}

// Render returns the text delivered to the messaging service
func (m Message) Render() string {
	if m.RequestType == "" {
		return m.Text
	}
	return fmt.Sprintf("[%s] %s", m.RequestType, m.Text)
}

// Notifier delivers a message synchronously
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, msg Message) error

// Notify implements Notifier
func (f NotifierFunc) Notify(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Nop discards every message
type Nop struct{}

// Notify implements Notifier
func (Nop) Notify(context.Context, Message) error { return nil }

// TelegramConfig holds the bot credentials
type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIBase  string
}

// LarkConfig holds the app credentials and the message recipient
type LarkConfig struct {
	AppID         string
	AppSecret     string
	ReceiveID     string
	ReceiveIDType string
}

// Config selects and configures a provider
type Config struct {
	Provider string
	Timeout  time.Duration
	Telegram TelegramConfig
	Lark     LarkConfig
}

// New builds the notifier named by cfg.Provider
func New(cfg Config, logger *zap.Logger) (Notifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case "", ProviderNone:
		return Nop{}, nil
	case ProviderTelegram:
		if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
			return nil, fmt.Errorf("%w: telegram bot_token and chat_id", ErrMissingSetting)
		}
		return NewTelegramNotifier(cfg.Telegram, cfg.Timeout, logger), nil
	case ProviderLark:
		if cfg.Lark.AppID == "" || cfg.Lark.AppSecret == "" || cfg.Lark.ReceiveID == "" {
			return nil, fmt.Errorf("%w: lark app_id, app_secret and receive_id", ErrMissingSetting)
		}
		return NewLarkNotifier(cfg.Lark, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
