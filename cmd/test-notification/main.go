package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/config"
	"github.com/garyjia/badge-intake/internal/notification"
)

// Sends one message through the configured notification provider so that
// credentials can be checked without starting the server.

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration")
	requestType := flag.String("type", "Connectivity Check", "request type prefix")
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		text = "Badge intake notification test at " + time.Now().Format(time.RFC3339)
	}

	fmt.Println("=== Badge Intake Notification Test ===")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Provider: %s\n", cfg.Notification.Provider)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	notifier, err := notification.New(cfg.ToNotificationConfig(), logger)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Notification.Timeout)
	defer cancel()

	msg := notification.Message{Text: text, RequestType: *requestType, Timestamp: time.Now()}
	fmt.Printf("Sending: %s\n", msg.Render())
	if err := notifier.Notify(ctx, msg); err != nil {
		log.Fatalf("✗ Send failed: %v", err)
	}
	fmt.Println("✓ Message sent")
}
