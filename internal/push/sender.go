package push

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/messaging"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
)

// Notification is an ephemeral push payload. It is created per dispatch and
// discarded after the send settles.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers a notification to a single device token and returns the
// delivery identifier assigned by the push service.
type Sender interface {
	Send(ctx context.Context, token string, n Notification) (string, error)
}

// FCMSender sends notifications via Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
	logger *logger.Logger
}

// NewFCMSender creates a new FCM-backed sender.
func NewFCMSender(client *messaging.Client, logger *logger.Logger) *FCMSender {
	return &FCMSender{
		client: client,
		logger: logger,
	}
}

// Send delivers one notification to one device token.
func (s *FCMSender) Send(ctx context.Context, token string, n Notification) (string, error) {
	log := s.logger.WithContext(ctx).WithComponent("fcm-sender")

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data:  n.Data,
		Token: token,
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		return "", err
	}

	log.Debug("notification sent",
		slog.String("message_id", messageID),
		slog.String("token_prefix", tokenPrefix(token)))

	return messageID, nil
}

// tokenPrefix truncates a token for logging. Full tokens never appear in logs.
func tokenPrefix(token string) string {
	if len(token) <= 10 {
		return token
	}
	return token[:10] + "..."
}
