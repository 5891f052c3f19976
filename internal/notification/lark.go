package notification

import (
	"context"
	"encoding/json"
	"fmt"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"
)

const (
	defaultReceiveIDType = "chat_id"
	textMsgType          = "text"
)

// LarkNotifier posts text messages through the Lark IM API
type LarkNotifier struct {
	client        *lark.Client
	receiveID     string
	receiveIDType string
	logger        *zap.Logger
}

// NewLarkNotifier creates a new Lark notifier
func NewLarkNotifier(cfg LarkConfig, logger *zap.Logger, opts ...lark.ClientOptionFunc) *LarkNotifier {
	options := append([]lark.ClientOptionFunc{
		lark.WithLogLevel(larkcore.LogLevelInfo),
		lark.WithEnableTokenCache(true),
	}, opts...)

	receiveIDType := cfg.ReceiveIDType
	if receiveIDType == "" {
		receiveIDType = defaultReceiveIDType
	}

	return &LarkNotifier{
		client:        lark.NewClient(cfg.AppID, cfg.AppSecret, options...),
		receiveID:     cfg.ReceiveID,
		receiveIDType: receiveIDType,
		logger:        logger,
	}
}

// Notify implements Notifier
func (n *LarkNotifier) Notify(ctx context.Context, msg Message) error {
	content, err := json.Marshal(map[string]string{"text": msg.Render()})
	if err != nil {
		return fmt.Errorf("failed to encode message content: %w", err)
	}

	req := larkIm.NewCreateMessageReqBuilder().
		ReceiveIdType(n.receiveIDType).
		Body(larkIm.NewCreateMessageReqBodyBuilder().
			ReceiveId(n.receiveID).
			MsgType(textMsgType).
			Content(string(content)).
			Build()).
		Build()

	resp, err := n.client.Im.Message.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send lark message: %w", err)
	}

	if !resp.Success() {
		return fmt.Errorf("lark API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}

	messageID := ""
	if resp.Data != nil && resp.Data.MessageId != nil {
		messageID = *resp.Data.MessageId
	}

	n.logger.Info("Lark message sent",
		zap.String("message_id", messageID),
		zap.String("receive_id", n.receiveID),
		zap.String("request_type", msg.RequestType))

	return nil
}
