package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(context.Context) error { return m.err }

type feedStatusMock struct {
	listening   bool
	subscribers int
}

func (m feedStatusMock) Listening() bool      { return m.listening }
func (m feedStatusMock) SubscriberCount() int { return m.subscribers }

func probe(t *testing.T, handler http.HandlerFunc, path string) (int, HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Timestamp.IsZero(), "timestamp")
	return rec.Code, resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: errors.New("down")}, feedStatusMock{}, "v1")

	code, resp := probe(t, h.Live, "/live")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dbErr      error
		listening  bool
		wantCode   int
		wantStatus string
	}{
		{name: "db up", listening: true, wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "feed reconnecting stays ready", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "db down", dbErr: errors.New("refused"), listening: true, wantCode: http.StatusServiceUnavailable, wantStatus: "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(&dbPingerMock{err: tt.dbErr}, feedStatusMock{listening: tt.listening}, "v1")

			code, resp := probe(t, h.Ready, "/ready")

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dbErr      error
		feed       feedStatusMock
		wantCode   int
		wantStatus string
		wantDB     string
		wantFeed   string
	}{
		{
			name: "all ok", feed: feedStatusMock{listening: true, subscribers: 3},
			wantCode: http.StatusOK, wantStatus: "ok", wantDB: "ok", wantFeed: "ok",
		},
		{
			name: "feed reconnecting", feed: feedStatusMock{subscribers: 3},
			wantCode: http.StatusOK, wantStatus: "degraded", wantDB: "ok", wantFeed: "reconnecting",
		},
		{
			name: "db down wins", dbErr: errors.New("refused"), feed: feedStatusMock{},
			wantCode: http.StatusServiceUnavailable, wantStatus: "down", wantDB: "down", wantFeed: "reconnecting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(&dbPingerMock{err: tt.dbErr}, tt.feed, "v1.2.3")

			code, resp := probe(t, h.Health, "/health")

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "v1.2.3", resp.Version)
			assert.Equal(t, tt.wantDB, resp.Components["database"].Status)
			assert.Equal(t, tt.wantFeed, resp.Components["change_feed"].Status)

			feed := resp.Components["change_feed"]
			require.NotNil(t, feed.Subscribers)
			assert.Equal(t, tt.feed.subscribers, *feed.Subscribers)
			if tt.dbErr == nil {
				assert.NotEmpty(t, resp.Components["database"].Latency)
			}
		})
	}
}
