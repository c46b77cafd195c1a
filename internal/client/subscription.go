package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/querycloud/internal/tui"
	"github.com/heartmarshall/querycloud/internal/domain"
)

type changeDTO struct {
	Table string    `json:"table"`
	Op    string    `json:"op"`
	ID    uuid.UUID `json:"id"`
}

// SubscribeToChanges opens the WebSocket change feed for collection. The
// returned subscription redials after ReconnectDelay when the connection
// drops and then emits a RESYNC event, since changes made while
// disconnected are unknown. Cancelling ctx or calling Close ends it.
func (c *Client) SubscribeToChanges(ctx context.Context, collection domain.Collection) (tui.Subscription, error) {
	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += "/api/changes"
	u.RawQuery = url.Values{"collection": {collection.String()}}.Encode()
	target := u.String()

	conn, resp, err := c.dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return nil, fmt.Errorf("subscribe to %s: %w", collection, statusError(resp))
		}
		return nil, fmt.Errorf("subscribe to %s: %w", collection, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	s := &subscription{
		client:     c,
		target:     target,
		collection: collection,
		changes:    make(chan domain.ChangeEvent),
		cancel:     cancel,
		done:       make(chan struct{}),
		log:        c.log.With(slog.String("collection", collection.String())),
	}
	go s.run(subCtx, conn)

	return s, nil
}

type subscription struct {
	client     *Client
	target     string
	collection domain.Collection
	changes    chan domain.ChangeEvent
	cancel     context.CancelFunc
	done       chan struct{}
	once       sync.Once
	log        *slog.Logger
}

func (s *subscription) Changes() <-chan domain.ChangeEvent {
	return s.changes
}

// Close stops the feed and waits for the reader to exit. Safe to call more than once.
func (s *subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *subscription) run(ctx context.Context, conn *websocket.Conn) {
	defer close(s.done)
	defer close(s.changes)

	for {
		err := s.read(ctx, conn)
		if ctx.Err() != nil {
			return
		}
		s.log.Warn("change feed disconnected", slog.String("error", err.Error()))

		conn = s.redial(ctx)
		if conn == nil {
			return
		}
		s.log.Info("change feed reconnected")

		if !s.emit(ctx, domain.ChangeEvent{Collection: s.collection, Op: domain.ChangeOpResync}) {
			conn.Close()
			return
		}
	}
}

// read forwards frames from conn until it fails or ctx ends.
func (s *subscription) read(ctx context.Context, conn *websocket.Conn) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		var msg changeDTO
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		event := domain.ChangeEvent{
			Collection: domain.Collection(msg.Table),
			Op:         domain.ChangeOp(msg.Op),
			ID:         msg.ID,
		}
		if !s.emit(ctx, event) {
			return ctx.Err()
		}
	}
}

func (s *subscription) emit(ctx context.Context, event domain.ChangeEvent) bool {
	select {
	case s.changes <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// redial retries until a connection is established or ctx ends (nil).
func (s *subscription) redial(ctx context.Context) *websocket.Conn {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.client.reconnectDelay):
		}

		conn, resp, err := s.client.dialer.DialContext(ctx, s.target, nil)
		if err == nil {
			return conn
		}
		if resp != nil {
			resp.Body.Close()
		}
		s.log.Debug("change feed redial failed", slog.String("error", err.Error()))
	}
}
