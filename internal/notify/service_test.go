package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sanjeevan43/LifeFlow/internal/errors"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"github.com/sanjeevan43/LifeFlow/internal/push"
	"github.com/sanjeevan43/LifeFlow/internal/store"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Format: "json"})
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*store.User
}

func (f *fakeUsers) GetUser(ctx context.Context, userID string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) setToken(userID, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[userID].FCMToken = token
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentRecord
	err  error
}

type sentRecord struct {
	token   string
	payload push.Notification
	at      time.Time
}

func (f *fakeSender) Send(ctx context.Context, token string, n push.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentRecord{token: token, payload: n, at: time.Now()})
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakeSender) records() []sentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentRecord, len(f.sent))
	copy(out, f.sent)
	return out
}

func newService(users *fakeUsers, sender *fakeSender, grace time.Duration) *Service {
	return NewService(users, sender, newTestLogger(), true, grace)
}

func TestSendToUserMissingFields(t *testing.T) {
	service := newService(&fakeUsers{users: map[string]*store.User{}}, &fakeSender{}, 0)

	for _, tc := range []struct{ userID, title, body string }{
		{"", "Hi", "Body"},
		{"u1", "", "Body"},
		{"u1", "Hi", ""},
	} {
		_, err := service.SendToUser(context.Background(), tc.userID, tc.title, tc.body, nil)
		if errors.KindOf(err) != errors.KindInvalidArgument {
			t.Errorf("SendToUser(%q,%q,%q) kind = %v, want invalid-argument",
				tc.userID, tc.title, tc.body, errors.KindOf(err))
		}
	}
}

func TestSendToUserUnknownUser(t *testing.T) {
	service := newService(&fakeUsers{users: map[string]*store.User{}}, &fakeSender{}, 0)

	_, err := service.SendToUser(context.Background(), "u1", "Hi", "Body", nil)
	if errors.KindOf(err) != errors.KindNotFound {
		t.Errorf("kind = %v, want not-found", errors.KindOf(err))
	}
}

func TestSendToUserNoToken(t *testing.T) {
	users := &fakeUsers{users: map[string]*store.User{"u1": {ID: "u1"}}}
	service := newService(users, &fakeSender{}, 0)

	_, err := service.SendToUser(context.Background(), "u1", "Hi", "Body", nil)
	if errors.KindOf(err) != errors.KindFailedPrecondition {
		t.Errorf("kind = %v, want failed-precondition", errors.KindOf(err))
	}
}

func TestSendToUserSuccess(t *testing.T) {
	users := &fakeUsers{users: map[string]*store.User{"u1": {ID: "u1", FCMToken: "T"}}}
	sender := &fakeSender{}
	service := newService(users, sender, 0)

	messageID, err := service.SendToUser(context.Background(), "u1", "Hi", "Body", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("SendToUser returned error: %v", err)
	}
	if messageID == "" {
		t.Error("expected a message ID")
	}

	records := sender.records()
	if len(records) != 1 {
		t.Fatalf("expected 1 send, got %d", len(records))
	}
	if records[0].token != "T" {
		t.Errorf("sent to token %q, want T", records[0].token)
	}
	if records[0].payload.Title != "Hi" || records[0].payload.Body != "Body" {
		t.Errorf("payload = %+v", records[0].payload)
	}
	if records[0].payload.Data["k"] != "v" {
		t.Errorf("data not passed through verbatim: %v", records[0].payload.Data)
	}
}

func TestSendToUserDeliveryFailureIsInternal(t *testing.T) {
	users := &fakeUsers{users: map[string]*store.User{"u1": {ID: "u1", FCMToken: "T"}}}
	sender := &fakeSender{err: fmt.Errorf("fcm unavailable")}
	service := newService(users, sender, 0)

	_, err := service.SendToUser(context.Background(), "u1", "Hi", "Body", nil)
	if errors.KindOf(err) != errors.KindInternal {
		t.Errorf("kind = %v, want internal", errors.KindOf(err))
	}
}
