// Package notify turns PostgreSQL LISTEN/NOTIFY traffic into per-subscriber
// change event channels. One Listener owns one dedicated connection and fans
// every notification out to the subscribers of the matching collection.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/querycloud/internal/config"
	"github.com/heartmarshall/querycloud/internal/domain"
)

// Listener holds the LISTEN connection and the set of live subscribers.
type Listener struct {
	pool           *pgxpool.Pool
	log            *slog.Logger
	channel        string
	reconnectDelay time.Duration
	buffer         int

	listening atomic.Bool

	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// NewListener creates a Listener. Call Run to start receiving notifications.
func NewListener(logger *slog.Logger, pool *pgxpool.Pool, cfg config.NotifyConfig) *Listener {
	return &Listener{
		pool:           pool,
		log:            logger.With("component", "notify"),
		channel:        cfg.Channel,
		reconnectDelay: cfg.ReconnectDelay,
		buffer:         cfg.SubscriberBuffer,
		subs:           make(map[*Subscriber]struct{}),
	}
}

// Listening reports whether the LISTEN connection is currently established.
func (l *Listener) Listening() bool {
	return l.listening.Load()
}

// Run keeps a LISTEN connection open until ctx is cancelled, reconnecting
// after ReconnectDelay whenever the connection fails. After a reconnect every
// subscriber receives a RESYNC event because notifications sent during the
// outage were lost. Run returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	established := false
	for {
		ok, err := l.listen(ctx, established)
		established = established || ok
		if ctx.Err() != nil {
			return nil
		}

		reconnects.Inc()
		l.log.Warn("change feed connection lost",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", l.reconnectDelay),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.reconnectDelay):
		}
	}
}

// listen runs one connection lifetime. ok reports whether LISTEN succeeded.
func (l *Listener) listen(ctx context.Context, resync bool) (ok bool, err error) {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire listen connection: %w", err)
	}
	conn := pooled.Hijack()
	defer func() {
		l.listening.Store(false)
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return false, fmt.Errorf("listen %s: %w", l.channel, err)
	}
	l.listening.Store(true)
	l.log.Info("change feed listening", slog.String("channel", l.channel))

	if resync {
		l.Publish(domain.ChangeEvent{Collection: domain.CollectionQuestions, Op: domain.ChangeOpResync})
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return true, fmt.Errorf("wait for notification: %w", err)
		}

		event, err := ParsePayload(n.Payload)
		if err != nil {
			l.log.Warn("malformed change notification",
				slog.String("payload", n.Payload),
				slog.String("error", err.Error()),
			)
			continue
		}

		eventsReceived.WithLabelValues(event.Collection.String(), event.Op.String()).Inc()
		l.Publish(event)
	}
}

type payload struct {
	Table string    `json:"table"`
	Op    string    `json:"op"`
	ID    uuid.UUID `json:"id"`
}

// ParsePayload decodes the JSON body produced by the notify trigger.
func ParsePayload(raw string) (domain.ChangeEvent, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("decode payload: %w", err)
	}

	op := domain.ChangeOp(p.Op)
	if !op.IsValid() {
		return domain.ChangeEvent{}, fmt.Errorf("unknown op %q", p.Op)
	}
	if p.Table == "" {
		return domain.ChangeEvent{}, errors.New("missing table")
	}

	return domain.ChangeEvent{
		Collection: domain.Collection(p.Table),
		Op:         op,
		ID:         p.ID,
	}, nil
}

// Subscribe registers a subscriber for collection. Only collections that carry
// a notify trigger can be watched.
func (l *Listener) Subscribe(collection domain.Collection) (*Subscriber, error) {
	if !collection.IsWatchable() {
		return nil, domain.NewValidationError("collection", fmt.Sprintf("%q is not watchable", collection))
	}

	s := &Subscriber{
		listener:   l,
		collection: collection,
		events:     make(chan domain.ChangeEvent, l.buffer),
	}

	l.mu.Lock()
	l.subs[s] = struct{}{}
	l.mu.Unlock()

	subscribersActive.Inc()
	l.log.Debug("subscriber added", slog.String("collection", collection.String()))

	return s, nil
}

// SubscriberCount returns the number of open subscriptions.
func (l *Listener) SubscriberCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// Publish delivers event to every subscriber of its collection without
// blocking. A subscriber whose buffer is full already has a pending event,
// and every event means "reload", so the extra one is dropped.
func (l *Listener) Publish(event domain.ChangeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for s := range l.subs {
		if s.collection != event.Collection {
			continue
		}
		select {
		case s.events <- event:
		default:
			eventsDropped.Inc()
		}
	}
}

func (l *Listener) remove(s *Subscriber) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.subs, s)
	close(s.events)
	subscribersActive.Dec()
}

// Subscriber is one consumer's view of the change feed.
type Subscriber struct {
	listener   *Listener
	collection domain.Collection
	events     chan domain.ChangeEvent
	once       sync.Once
}

// Events yields change events until Close is called, then is closed.
func (s *Subscriber) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Close unregisters the subscriber. Safe to call more than once.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.listener.remove(s)
		s.listener.log.Debug("subscriber removed", slog.String("collection", s.collection.String()))
	})
}
