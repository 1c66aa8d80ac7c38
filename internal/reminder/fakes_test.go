package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"github.com/sanjeevan43/LifeFlow/internal/push"
	"github.com/sanjeevan43/LifeFlow/internal/store"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Format: "json"})
}

// fakeTasks serves a task snapshot from memory and records acks by mutating
// the snapshot, mirroring the Firestore flag write.
type fakeTasks struct {
	mu      sync.Mutex
	tasks   []store.Task
	acked   []string
	ackErr  error
	listErr error
}

func (f *fakeTasks) TasksDueBetween(ctx context.Context, from, to time.Time) ([]store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	snapshot := make([]store.Task, len(f.tasks))
	copy(snapshot, f.tasks)
	return snapshot, nil
}

func (f *fakeTasks) MarkTaskReminderSent(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ackErr != nil {
		return f.ackErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].ReminderSent = true
		}
	}
	f.acked = append(f.acked, taskID)
	return nil
}

type fakeHabits struct {
	habits []store.Habit
	err    error
}

func (f *fakeHabits) ListHabits(ctx context.Context) ([]store.Habit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.habits, nil
}

type fakeUsers struct {
	users map[string]*store.User
}

func (f *fakeUsers) GetUser(ctx context.Context, userID string) (*store.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// fakeSender records sends and fails deliveries whose token appears in
// failTokens.
type fakeSender struct {
	mu         sync.Mutex
	sent       []sentRecord
	failTokens map[string]bool
	nextID     int
}

type sentRecord struct {
	token   string
	payload push.Notification
}

func (f *fakeSender) Send(ctx context.Context, token string, n push.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTokens[token] {
		return "", fmt.Errorf("delivery rejected for token %s", token)
	}
	f.nextID++
	f.sent = append(f.sent, sentRecord{token: token, payload: n})
	return fmt.Sprintf("msg-%d", f.nextID), nil
}

func (f *fakeSender) sentTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens := make([]string, 0, len(f.sent))
	for _, record := range f.sent {
		tokens = append(tokens, record.token)
	}
	return tokens
}

func timePtr(t time.Time) *time.Time {
	return &t
}
