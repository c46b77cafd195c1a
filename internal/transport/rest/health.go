package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// feedStatus is the part of the change feed the probes inspect.
type feedStatus interface {
	Listening() bool
	SubscriberCount() int
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	db      dbPinger
	feed    feedStatus
	version string
}

func NewHealthHandler(db dbPinger, feed feedStatus, version string) *HealthHandler {
	return &HealthHandler{db: db, feed: feed, version: version}
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus describes one dependency.
type CompStatus struct {
	Status      string `json:"status"`
	Latency     string `json:"latency,omitempty"`
	Subscribers *int   `json:"subscribers,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 while the database is unreachable. A reconnecting change
// feed keeps the instance ready: clients resync once it is back.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if db := h.probeDB(r.Context()); db.Status != "ok" {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports every component. Status is "down" (503) without a database
// and "degraded" (200) while the change feed is reconnecting.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.probeDB(r.Context())

	subs := h.feed.SubscriberCount()
	feed := CompStatus{Status: "ok", Subscribers: &subs}
	if !h.feed.Listening() {
		feed.Status = "reconnecting"
	}

	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: map[string]CompStatus{"database": db, "change_feed": feed},
		Timestamp:  time.Now(),
	}
	code := http.StatusOK
	switch {
	case db.Status != "ok":
		resp.Status = "down"
		code = http.StatusServiceUnavailable
	case feed.Status != "ok":
		resp.Status = "degraded"
	}
	writeJSON(w, code, resp)
}

func (h *HealthHandler) probeDB(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}
