package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/sanjeevan43/LifeFlow/internal/reminder"
)

// WelcomeNewUser runs the welcome handshake for a freshly created user: wait
// the grace period so the client can attach an FCM token, re-read the user,
// and send the welcome message if a token is present. One shot, best effort;
// every outcome except a cancelled context is benign.
func (s *Service) WelcomeNewUser(ctx context.Context, userID string) error {
	log := s.logger.WithContext(ctx).WithComponent("welcome")

	if !s.enabled {
		log.Debug("push notifications disabled, skipping welcome", slog.String("user_id", userID))
		return nil
	}

	log.Info("waiting for token attachment",
		slog.String("user_id", userID),
		slog.Duration("grace_period", s.gracePeriod))

	select {
	case <-time.After(s.gracePeriod):
	case <-ctx.Done():
		return ctx.Err()
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		log.Warn("failed to re-read new user",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil
	}

	if !user.HasToken() {
		log.Info("no FCM token for new user after grace period", slog.String("user_id", userID))
		return nil
	}

	welcome := reminder.ComposeWelcome()
	messageID, err := s.sender.Send(ctx, user.FCMToken, welcome)
	if err != nil {
		log.Error("welcome send failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil
	}

	log.Info("welcome notification sent",
		slog.String("user_id", userID),
		slog.String("message_id", messageID))

	return nil
}
