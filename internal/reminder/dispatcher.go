package reminder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"github.com/sanjeevan43/LifeFlow/internal/push"
)

// Delivery is one unit of fan-out work: a payload bound to a device token.
// Key identifies the source item (task ID or user ID) so callers can act on
// the per-item outcome.
type Delivery struct {
	Key     string
	Token   string
	Payload push.Notification
}

// Result is the settled outcome of one delivery.
type Result struct {
	Key       string
	MessageID string
	Err       error
}

// Dispatcher issues all deliveries concurrently and waits for every send to
// settle before returning. A failed send never affects any other delivery.
type Dispatcher struct {
	sender push.Sender
	logger *logger.Logger
}

// NewDispatcher creates a new fan-out dispatcher over the given sender.
func NewDispatcher(sender push.Sender, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logger: logger,
	}
}

// Dispatch sends all deliveries in parallel and returns one result per
// delivery, indexed by input position. The dispatcher does not retry; a
// failed send is recorded and dropped for this cycle.
func (d *Dispatcher) Dispatch(ctx context.Context, deliveries []Delivery) []Result {
	if len(deliveries) == 0 {
		return nil
	}

	log := d.logger.WithContext(ctx).WithComponent("dispatcher")
	log.Info("dispatching notifications", slog.Int("count", len(deliveries)))

	results := make([]Result, len(deliveries))
	var wg sync.WaitGroup

	for i, delivery := range deliveries {
		wg.Add(1)
		go func(idx int, dl Delivery) {
			defer wg.Done()

			messageID, err := d.sender.Send(ctx, dl.Token, dl.Payload)
			if err != nil {
				log.Error("delivery failed",
					slog.String("key", dl.Key),
					slog.String("error", err.Error()))
			}
			results[idx] = Result{Key: dl.Key, MessageID: messageID, Err: err}
		}(i, delivery)
	}

	wg.Wait()
	return results
}

// SuccessCount returns the number of settled deliveries that succeeded.
func SuccessCount(results []Result) int {
	count := 0
	for _, result := range results {
		if result.Err == nil {
			count++
		}
	}
	return count
}
