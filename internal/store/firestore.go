package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection  = "users"
	tasksCollection  = "tasks"
	habitsCollection = "habits"
)

// ErrUserNotFound is returned when a user document does not exist. A user
// that exists but has no FCM token is not an error; see User.HasToken.
var ErrUserNotFound = errors.New("user not found")

// Store provides typed access to the LifeFlow Firestore collections.
type Store struct {
	client *firestore.Client
	logger *logger.Logger
}

// New creates a new Store backed by the given Firestore client.
func New(client *firestore.Client, logger *logger.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}

// GetUser fetches a user document by ID. Returns ErrUserNotFound when the
// document does not exist.
func (s *Store) GetUser(ctx context.Context, userID string) (*User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user %s: %w", userID, err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

// TasksDueBetween returns incomplete, not-yet-notified tasks whose due date
// falls in [from, to]. Firestore allows range operators on a single field,
// so the due date carries both range clauses and the flags are equality
// filters.
func (s *Store) TasksDueBetween(ctx context.Context, from, to time.Time) ([]Task, error) {
	log := s.logger.WithContext(ctx).WithComponent("store")

	iter := s.client.Collection(tasksCollection).
		Where("dueDate", ">=", from).
		Where("dueDate", "<=", to).
		Where("isCompleted", "==", false).
		Where("reminderSent", "==", false).
		Documents(ctx)
	defer iter.Stop()

	var tasks []Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query due tasks: %w", err)
		}

		var task Task
		if err := doc.DataTo(&task); err != nil {
			log.Warn("skipping malformed task document",
				slog.String("task_id", doc.Ref.ID),
				slog.String("error", err.Error()))
			continue
		}
		task.ID = doc.Ref.ID
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// ListHabits returns all habit documents. The habit collection is expected to
// stay small enough for a full scan per daily cycle.
func (s *Store) ListHabits(ctx context.Context) ([]Habit, error) {
	log := s.logger.WithContext(ctx).WithComponent("store")

	iter := s.client.Collection(habitsCollection).Documents(ctx)
	defer iter.Stop()

	var habits []Habit
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list habits: %w", err)
		}

		var habit Habit
		if err := doc.DataTo(&habit); err != nil {
			log.Warn("skipping malformed habit document",
				slog.String("habit_id", doc.Ref.ID),
				slog.String("error", err.Error()))
			continue
		}
		habit.ID = doc.Ref.ID
		habits = append(habits, habit)
	}

	return habits, nil
}

// MarkTaskReminderSent sets the reminderSent flag on a task. Setting an
// already-true flag is a no-op, which keeps re-invoked cycles idempotent.
func (s *Store) MarkTaskReminderSent(ctx context.Context, taskID string) error {
	_, err := s.client.Collection(tasksCollection).Doc(taskID).Update(ctx, []firestore.Update{
		{Path: "reminderSent", Value: true},
	})
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent for task %s: %w", taskID, err)
	}
	return nil
}
