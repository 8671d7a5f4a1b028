package outbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	appoutbox "milahouse/internal/app/outbox"
	"milahouse/internal/app/policies"
)

const defaultMaxAttempts = 10

var ErrRelayNotConfigured = errors.New("outbox: relay missing publisher")

// Relay is the service's outbox. Nothing is persisted here: records are
// published on Flush, and the ones the broker refused wait in memory for the
// retry loop.
type Relay struct {
	Publisher   policies.Publisher
	TopicPrefix string
	Source      string
	Interval    time.Duration
	Backoff     []time.Duration
	MaxAttempts int
	Logger      *slog.Logger
	Now         func() time.Time

	mu      sync.Mutex
	pending []appoutbox.EventRecord
	retries []retryItem
}

type retryItem struct {
	record   appoutbox.EventRecord
	attempts int
	next     time.Time
}

func (r *Relay) Add(ctx context.Context, record appoutbox.EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, record)
	return nil
}

// Flush publishes everything added so far. A failed publish never fails the
// command: the record is queued for retry instead.
func (r *Relay) Flush(ctx context.Context) error {
	if r.Publisher == nil {
		return ErrRelayNotConfigured
	}
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, rec := range batch {
		if err := r.publish(ctx, rec); err != nil {
			r.warn("relay publish failed, queued for retry", rec, 0, err)
			r.enqueue(retryItem{record: rec, attempts: 1, next: r.nextRetry(0)})
		}
	}
	return nil
}

// Run retries queued records until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	if r.Publisher == nil {
		return ErrRelayNotConfigured
	}
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.RetryDue(ctx)
		}
	}
}

// RetryDue publishes the queued records whose backoff has elapsed and returns
// how many went out.
func (r *Relay) RetryDue(ctx context.Context) int {
	now := r.now()
	r.mu.Lock()
	var due []retryItem
	keep := r.retries[:0]
	for _, item := range r.retries {
		if item.next.After(now) {
			keep = append(keep, item)
			continue
		}
		due = append(due, item)
	}
	r.retries = keep
	r.mu.Unlock()

	sent := 0
	for _, item := range due {
		err := r.publish(ctx, item.record)
		if err == nil {
			sent++
			continue
		}
		if item.attempts+1 >= r.maxAttempts() {
			if r.Logger != nil {
				r.Logger.Error("relay gave up on event", "event_id", item.record.ID, "event", item.record.Name, "attempts", item.attempts+1, "error", err)
			}
			continue
		}
		r.warn("relay retry failed", item.record, item.attempts, err)
		r.enqueue(retryItem{record: item.record, attempts: item.attempts + 1, next: r.nextRetry(item.attempts)})
	}
	return sent
}

// Queued is the number of records waiting for a retry.
func (r *Relay) Queued() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.retries)
}

func (r *Relay) publish(ctx context.Context, rec appoutbox.EventRecord) error {
	payload, headers, err := appoutbox.CloudEvent(rec, r.source())
	if err != nil {
		return err
	}
	return r.Publisher.Publish(ctx, appoutbox.TopicFor(rec.Name, r.TopicPrefix), rec.Aggregate, payload, headers)
}

func (r *Relay) enqueue(item retryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retries = append(r.retries, item)
}

func (r *Relay) warn(msg string, rec appoutbox.EventRecord, attempts int, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn(msg, "event_id", rec.ID, "event", rec.Name, "attempts", attempts, "error", err)
}

func (r *Relay) nextRetry(attempts int) time.Time {
	now := r.now()
	if attempts < len(r.Backoff) {
		return now.Add(r.Backoff[attempts])
	}
	if len(r.Backoff) > 0 {
		return now.Add(r.Backoff[len(r.Backoff)-1])
	}
	return now.Add(5 * time.Second)
}

func (r *Relay) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Relay) interval() time.Duration {
	if r.Interval <= 0 {
		return 2 * time.Second
	}
	return r.Interval
}

func (r *Relay) maxAttempts() int {
	if r.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return r.MaxAttempts
}

func (r *Relay) source() string {
	if r.Source != "" {
		return r.Source
	}
	return "app://milahouse"
}

// LogPublisher stands in for the broker when none is configured: requests
// are written to the log and nowhere else.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.Logger != nil {
		p.Logger.Info("event relayed to log", "topic", topic, "key", key, "payload", string(payload))
	}
	return nil
}

var (
	_ appoutbox.Outbox   = (*Relay)(nil)
	_ policies.Publisher = LogPublisher{}
)
