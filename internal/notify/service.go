package notify

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/sanjeevan43/LifeFlow/internal/errors"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"github.com/sanjeevan43/LifeFlow/internal/push"
	"github.com/sanjeevan43/LifeFlow/internal/store"
)

// UserSource resolves user documents for token lookup.
type UserSource interface {
	GetUser(ctx context.Context, userID string) (*store.User, error)
}

// Service handles the synchronous single-target send path and the welcome
// handshake for newly created users. Unlike the batch cycles it propagates
// structured errors, because its caller is interactive and awaits a result.
type Service struct {
	users       UserSource
	sender      push.Sender
	logger      *logger.Logger
	enabled     bool
	gracePeriod time.Duration
}

// NewService creates a new direct notification service. gracePeriod is how
// long the welcome handshake waits for the client to attach a push token
// after signup.
func NewService(
	users UserSource,
	sender push.Sender,
	logger *logger.Logger,
	enabled bool,
	gracePeriod time.Duration,
) *Service {
	return &Service{
		users:       users,
		sender:      sender,
		logger:      logger,
		enabled:     enabled,
		gracePeriod: gracePeriod,
	}
}

// SendToUser sends one notification to one user and returns the delivery
// identifier. Error kinds: invalid-argument when a required field is missing,
// not-found when the user document does not exist, failed-precondition when
// the user has no push token, internal for any send failure.
func (s *Service) SendToUser(ctx context.Context, userID, title, body string, data map[string]string) (string, error) {
	log := s.logger.WithContext(ctx).WithComponent("direct-send")

	if userID == "" || title == "" || body == "" {
		return "", errors.New(errors.KindInvalidArgument, "missing required fields")
	}

	if !s.enabled {
		return "", errors.New(errors.KindFailedPrecondition, "push notifications are disabled")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, store.ErrUserNotFound) {
			return "", errors.New(errors.KindNotFound, "user not found")
		}
		return "", errors.Wrap(errors.KindInternal, "failed to fetch user", err)
	}

	if !user.HasToken() {
		return "", errors.New(errors.KindFailedPrecondition, "user has no FCM token")
	}

	messageID, err := s.sender.Send(ctx, user.FCMToken, push.Notification{
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		log.Error("direct send failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return "", errors.Wrap(errors.KindInternal, "failed to send notification", err)
	}

	log.Info("notification sent",
		slog.String("user_id", userID),
		slog.String("message_id", messageID))

	return messageID, nil
}
