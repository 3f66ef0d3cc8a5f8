package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/classquiz/internal/api/apierr"
	"github.com/mcoot/classquiz/internal/api/handler"
	"github.com/mcoot/classquiz/internal/api/middleware"
	"github.com/mcoot/classquiz/internal/api/response"
	"github.com/mcoot/classquiz/internal/live"
	"github.com/mcoot/classquiz/internal/services/roster"
	"github.com/mcoot/classquiz/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Storage       storage.Storage
	RosterService *roster.Service
	HubManager    *live.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	// Create handlers
	studentHandler := handler.NewStudentHandler(cfg.RosterService)
	progressHandler := handler.NewProgressHandler(cfg.RosterService)
	eventsHandler := handler.NewEventsHandler(cfg.HubManager)

	// Create middleware
	loadPlayerMiddleware := middleware.LoadPlayer(cfg.Storage)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware; logging wraps recovery so
	// recovered panics are logged as 500s under their request id
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Login and dashboard routes
	api.HandleFunc("/students/login", studentHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/students/reset", studentHandler.ResetAll).Methods(http.MethodPost)
	api.HandleFunc("/students", studentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/students/stats", studentHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/students/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Per-student routes resolve {id} first
	student := api.PathPrefix("/students/{" + middleware.PlayerIDVar + "}").Subrouter()
	student.Use(loadPlayerMiddleware)
	student.HandleFunc("/progress", progressHandler.Get).Methods(http.MethodGet)
	student.HandleFunc("/progress", progressHandler.Record).Methods(http.MethodPost)
	student.HandleFunc("/reset", progressHandler.Reset).Methods(http.MethodPost)
	student.HandleFunc("/reset-chapter", progressHandler.ResetChapter).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
