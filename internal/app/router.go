package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/querycloud/internal/config"
	"github.com/heartmarshall/querycloud/internal/transport/middleware"
	"github.com/heartmarshall/querycloud/internal/transport/rest"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health    *rest.HealthHandler
	Questions *rest.QuestionHandler
	Changes   *rest.ChangesHandler
}

// NewRouter mounts probes, metrics, the REST API and the change feed
// behind the shared middleware chain.
func NewRouter(h Handlers, cors config.CORSConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/questions", h.Questions.List)
	mux.HandleFunc("POST /api/questions", h.Questions.Create)
	mux.HandleFunc("GET /api/questions/{id}", h.Questions.Get)
	mux.HandleFunc("GET /api/questions/{id}/answers", h.Questions.ListAnswers)
	mux.HandleFunc("POST /api/questions/{id}/answers", h.Questions.CreateAnswer)
	mux.HandleFunc("GET /api/changes", h.Changes.Watch)

	// Metrics wraps the mux directly: the mux records the matched pattern
	// on the request value it receives.
	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cors),
		middleware.Metrics(),
	)(mux)
}
