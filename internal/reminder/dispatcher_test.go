package reminder

import (
	"context"
	"testing"

	"github.com/sanjeevan43/LifeFlow/internal/push"
)

func TestDispatchIsolatesFailures(t *testing.T) {
	sender := &fakeSender{failTokens: map[string]bool{"tok-b": true}}
	dispatcher := NewDispatcher(sender, newTestLogger())

	deliveries := []Delivery{
		{Key: "a", Token: "tok-a", Payload: push.Notification{Title: "A"}},
		{Key: "b", Token: "tok-b", Payload: push.Notification{Title: "B"}},
		{Key: "c", Token: "tok-c", Payload: push.Notification{Title: "C"}},
	}

	results := dispatcher.Dispatch(context.Background(), deliveries)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Results keep input order.
	for i, delivery := range deliveries {
		if results[i].Key != delivery.Key {
			t.Errorf("result %d has key %s, want %s", i, results[i].Key, delivery.Key)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("deliveries a and c should succeed despite b failing")
	}
	if results[1].Err == nil {
		t.Error("delivery b should fail")
	}
	if results[0].MessageID == "" || results[2].MessageID == "" {
		t.Error("successful deliveries should carry a message ID")
	}

	if got := SuccessCount(results); got != 2 {
		t.Errorf("SuccessCount = %d, want 2", got)
	}
}

func TestDispatchEmpty(t *testing.T) {
	dispatcher := NewDispatcher(&fakeSender{}, newTestLogger())
	if results := dispatcher.Dispatch(context.Background(), nil); results != nil {
		t.Errorf("expected nil results for empty dispatch, got %v", results)
	}
}
