package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTelegramAPIBase = "https://api.telegram.org"
	defaultTimeout         = 10 * time.Second
)

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// TelegramNotifier posts messages through the Bot API sendMessage method
type TelegramNotifier struct {
	botToken   string
	chatID     string
	apiBase    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(cfg TelegramConfig, timeout time.Duration, logger *zap.Logger) *TelegramNotifier {
	apiBase := strings.TrimSuffix(cfg.APIBase, "/")
	if apiBase == "" {
		apiBase = defaultTelegramAPIBase
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &TelegramNotifier{
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		apiBase:    apiBase,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Notify implements Notifier
func (n *TelegramNotifier) Notify(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: msg.Render()})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("telegram API error: status=%d, description=%s", resp.StatusCode, result.Description)
	}

	n.logger.Info("Telegram message sent",
		zap.String("chat_id", n.chatID),
		zap.String("request_type", msg.RequestType))

	return nil
}
