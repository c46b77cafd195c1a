package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/querycloud/internal/adapter/postgres/notify"
	"github.com/heartmarshall/querycloud/internal/domain"
	"github.com/heartmarshall/querycloud/internal/transport/middleware"
)

const writeWait = 10 * time.Second

// changeFeed defines the minimal interface needed by ChangesHandler.
type changeFeed interface {
	Subscribe(collection domain.Collection) (*notify.Subscriber, error)
}

// ChangeMessage is the JSON frame pushed to WebSocket clients per change.
type ChangeMessage struct {
	Table string    `json:"table"`
	Op    string    `json:"op"`
	ID    uuid.UUID `json:"id"`
}

// ChangesHandler streams change events over WebSocket. Each connection owns
// exactly one feed subscription, released when the connection ends.
type ChangesHandler struct {
	feed         changeFeed
	log          *slog.Logger
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// NewChangesHandler creates a ChangesHandler. Browser origins are checked
// against allowedOrigins (the CORS allow list); requests without an Origin
// header, such as the terminal client, are accepted.
func NewChangesHandler(feed changeFeed, allowedOrigins string, pingInterval time.Duration, logger *slog.Logger) *ChangesHandler {
	return &ChangesHandler{
		feed: feed,
		log:  logger.With("handler", "changes"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.AllowedOrigin(origin, allowedOrigins)
			},
		},
		pingInterval: pingInterval,
	}
}

// Watch handles GET /api/changes?collection=questions.
// The subscription is taken before the upgrade so no change that happens
// after the handshake completes can be missed.
func (h *ChangesHandler) Watch(w http.ResponseWriter, r *http.Request) {
	collection := domain.Collection(r.URL.Query().Get("collection"))
	if collection == "" {
		collection = domain.CollectionQuestions
	}

	sub, err := h.feed.Subscribe(collection)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		h.log.WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	h.log.DebugContext(r.Context(), "change stream opened", slog.String("collection", collection.String()))

	readTimeout := 2 * h.pingInterval
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	// Client frames carry no meaning; reading only detects close and drives pongs.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			h.log.DebugContext(r.Context(), "change stream closed by client")
			return
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ChangeMessage{
				Table: event.Collection.String(),
				Op:    event.Op.String(),
				ID:    event.ID,
			}); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					h.log.DebugContext(r.Context(), "change stream write failed", slog.String("error", err.Error()))
				}
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
