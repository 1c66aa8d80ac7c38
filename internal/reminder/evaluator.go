package reminder

import (
	"context"
	"sort"
	"time"

	"github.com/sanjeevan43/LifeFlow/internal/store"
)

// DefaultDueWindow is the look-ahead window for task reminders.
const DefaultDueWindow = time.Hour

// TaskSource provides the task snapshot and the acknowledgment write.
type TaskSource interface {
	TasksDueBetween(ctx context.Context, from, to time.Time) ([]store.Task, error)
	MarkTaskReminderSent(ctx context.Context, taskID string) error
}

// HabitSource provides the habit snapshot.
type HabitSource interface {
	ListHabits(ctx context.Context) ([]store.Habit, error)
}

// UserSource resolves user documents for token lookup.
type UserSource interface {
	GetUser(ctx context.Context, userID string) (*store.User, error)
}

// HabitDigest is one user's incomplete-habit summary for a daily cycle.
type HabitDigest struct {
	UserID     string
	Incomplete int
}

// Evaluator selects the (user, item) pairs due for a notification at a given
// reference instant. It never mutates state.
type Evaluator struct {
	tasks    TaskSource
	habits   HabitSource
	window   time.Duration
	location *time.Location
}

// NewEvaluator creates an evaluator over the given sources. The location
// defines the calendar-day boundary used by the habit rule.
func NewEvaluator(tasks TaskSource, habits HabitSource, window time.Duration, location *time.Location) *Evaluator {
	if window <= 0 {
		window = DefaultDueWindow
	}
	if location == nil {
		location = time.Local
	}
	return &Evaluator{
		tasks:    tasks,
		habits:   habits,
		window:   window,
		location: location,
	}
}

// DueTasks returns every task eligible for a reminder at now: due date in
// [now, now+window] inclusive, not completed, not already notified. The
// predicate is applied over the returned snapshot, so the result is correct
// even when the source returns a superset.
func (e *Evaluator) DueTasks(ctx context.Context, now time.Time) ([]store.Task, error) {
	windowEnd := now.Add(e.window)

	tasks, err := e.tasks.TasksDueBetween(ctx, now, windowEnd)
	if err != nil {
		return nil, err
	}

	eligible := tasks[:0]
	for _, task := range tasks {
		if task.IsCompleted || task.ReminderSent {
			continue
		}
		if task.DueDate.Before(now) || task.DueDate.After(windowEnd) {
			continue
		}
		eligible = append(eligible, task)
	}

	return eligible, nil
}

// IncompleteHabits returns one digest per user owning at least one habit with
// no completion today. "Today" starts at midnight in the evaluator's location.
// Digests are sorted by user ID so cycles process users in a stable order.
func (e *Evaluator) IncompleteHabits(ctx context.Context, now time.Time) ([]HabitDigest, error) {
	habits, err := e.habits.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	local := now.In(e.location)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.location)

	counts := make(map[string]int)
	for _, habit := range habits {
		if habit.CompletedOnOrAfter(startOfDay) {
			continue
		}
		counts[habit.UserID]++
	}

	digests := make([]HabitDigest, 0, len(counts))
	for userID, incomplete := range counts {
		digests = append(digests, HabitDigest{UserID: userID, Incomplete: incomplete})
	}
	sort.Slice(digests, func(i, j int) bool { return digests[i].UserID < digests[j].UserID })

	return digests, nil
}
