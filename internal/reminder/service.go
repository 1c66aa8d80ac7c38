package reminder

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"github.com/sanjeevan43/LifeFlow/internal/store"
)

// CycleSummary reports the observable effect of one evaluation cycle. It is
// logged and returned to HTTP trigger callers; cycles never surface errors to
// the invocation substrate.
type CycleSummary struct {
	Eligible int `json:"eligible"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// Service runs the batch notification cycles: evaluate eligibility, resolve
// tokens, fan out sends, and acknowledge delivered task reminders.
type Service struct {
	users      UserSource
	tasks      TaskSource
	evaluator  *Evaluator
	dispatcher *Dispatcher
	logger     *logger.Logger
	enabled    bool
}

// NewService creates a new reminder service.
func NewService(
	users UserSource,
	tasks TaskSource,
	evaluator *Evaluator,
	dispatcher *Dispatcher,
	logger *logger.Logger,
	enabled bool,
) *Service {
	return &Service{
		users:      users,
		tasks:      tasks,
		evaluator:  evaluator,
		dispatcher: dispatcher,
		logger:     logger,
		enabled:    enabled,
	}
}

// RunTaskReminders runs one task-due-soon cycle at the given reference
// instant. One push per eligible task; each delivered reminder is
// acknowledged so the task is not re-notified for the same window. All
// failures are logged and absorbed.
func (s *Service) RunTaskReminders(ctx context.Context, now time.Time) CycleSummary {
	log := s.logger.WithContext(ctx).WithComponent("task-reminders")

	if !s.enabled {
		log.Debug("push notifications disabled, skipping cycle")
		return CycleSummary{}
	}

	tasks, err := s.evaluator.DueTasks(ctx, now)
	if err != nil {
		log.Error("failed to evaluate due tasks", slog.String("error", err.Error()))
		return CycleSummary{}
	}

	summary := CycleSummary{Eligible: len(tasks)}
	if len(tasks) == 0 {
		log.Info("no tasks due in window")
		return summary
	}

	deliveries := make([]Delivery, 0, len(tasks))
	for _, task := range tasks {
		token, ok := s.resolveToken(ctx, log, task.UserID)
		if !ok {
			summary.Skipped++
			continue
		}
		deliveries = append(deliveries, Delivery{
			Key:     task.ID,
			Token:   token,
			Payload: ComposeTaskReminder(task),
		})
	}

	results := s.dispatcher.Dispatch(ctx, deliveries)
	for _, result := range results {
		if result.Err != nil {
			summary.Failed++
			continue
		}
		summary.Sent++
		if err := s.tasks.MarkTaskReminderSent(ctx, result.Key); err != nil {
			// The task may be re-notified next cycle; favoring a duplicate
			// reminder over a missed one.
			log.Warn("failed to acknowledge reminder",
				slog.String("task_id", result.Key),
				slog.String("error", err.Error()))
		}
	}

	log.Info("task reminder cycle completed",
		slog.Int("eligible", summary.Eligible),
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped))

	return summary
}

// RunStreakWarnings runs one habit-incomplete-today cycle at the given
// reference instant. One push per user, batching the incomplete count. There
// is no acknowledgment for this class: re-running the cycle on the same day
// re-sends the warning.
func (s *Service) RunStreakWarnings(ctx context.Context, now time.Time) CycleSummary {
	log := s.logger.WithContext(ctx).WithComponent("streak-warnings")

	if !s.enabled {
		log.Debug("push notifications disabled, skipping cycle")
		return CycleSummary{}
	}

	digests, err := s.evaluator.IncompleteHabits(ctx, now)
	if err != nil {
		log.Error("failed to evaluate incomplete habits", slog.String("error", err.Error()))
		return CycleSummary{}
	}

	summary := CycleSummary{Eligible: len(digests)}
	if len(digests) == 0 {
		log.Info("all habits completed today")
		return summary
	}

	deliveries := make([]Delivery, 0, len(digests))
	for _, digest := range digests {
		token, ok := s.resolveToken(ctx, log, digest.UserID)
		if !ok {
			summary.Skipped++
			continue
		}
		deliveries = append(deliveries, Delivery{
			Key:     digest.UserID,
			Token:   token,
			Payload: ComposeStreakWarning(digest.Incomplete),
		})
	}

	results := s.dispatcher.Dispatch(ctx, deliveries)
	summary.Sent = SuccessCount(results)
	summary.Failed = len(results) - summary.Sent

	log.Info("streak warning cycle completed",
		slog.Int("eligible", summary.Eligible),
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped))

	return summary
}

// resolveToken looks up a user's push token for the batch path. Missing
// users and missing tokens are both silent skips here, unlike the callable
// path which distinguishes them for its caller.
func (s *Service) resolveToken(ctx context.Context, log *logger.Logger, userID string) (string, bool) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("skipping unknown user", slog.String("user_id", userID))
		} else {
			log.Warn("failed to resolve user",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		}
		return "", false
	}
	if !user.HasToken() {
		log.Debug("skipping user without push token", slog.String("user_id", userID))
		return "", false
	}
	return user.FCMToken, true
}
