package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pongarena-go/internal/api/handler"
	"github.com/mcoot/pongarena-go/internal/api/middleware"
	"github.com/mcoot/pongarena-go/internal/push"
	matchsvc "github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/services/matchmaking"
	"github.com/mcoot/pongarena-go/internal/services/rating"
	"github.com/mcoot/pongarena-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Queue         *matchmaking.Queue
	Coordinator   *matchsvc.Coordinator
	RatingService *rating.Service
	Storage       storage.Storage
	Broadcaster   *push.Broadcaster
	HubManager    *push.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	queueHandler := handler.NewQueueHandler(cfg.Queue, cfg.Coordinator, cfg.Broadcaster, cfg.Logger)
	matchHandler := handler.NewMatchHandler(cfg.Coordinator)
	playerHandler := handler.NewPlayerHandler(cfg.Coordinator, cfg.RatingService, cfg.Storage)
	eventsHandler := handler.NewEventsHandler(cfg.HubManager)

	identityMiddleware := middleware.Identity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Queue intents (identity required)
	queue := api.PathPrefix("/queue").Subrouter()
	queue.Use(identityMiddleware)
	queue.HandleFunc("", queueHandler.Join).Methods(http.MethodPost)
	queue.HandleFunc("", queueHandler.Leave).Methods(http.MethodDelete)
	queue.HandleFunc("/stats", queueHandler.Stats).Methods(http.MethodGet)

	// Match intents (identity required)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(identityMiddleware)
	matches.HandleFunc("/{id}/paddle", matchHandler.Paddle).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/disconnect", matchHandler.Disconnect).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Cancel).Methods(http.MethodDelete)

	// Rating and history lookups
	players := api.PathPrefix("/players").Subrouter()
	players.HandleFunc("/{id}/rating", playerHandler.GetRating).Methods(http.MethodGet)
	players.HandleFunc("/{id}/matches", playerHandler.GetMatches).Methods(http.MethodGet)

	// Event stream (identity required)
	events := api.PathPrefix("/events").Subrouter()
	events.Use(identityMiddleware)
	events.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
