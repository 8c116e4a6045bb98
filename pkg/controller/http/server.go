package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server exposing the dashboard API
func NewServer(
	ctx context.Context,
	addr string,
	authUC usecase.AuthUseCase,
	groupsUC usecase.GroupsUseCase,
	notifyUC usecase.NotifyUseCase,
	statusUC usecase.StatusUseCase,
	authRequired bool,
) *Server {
	router := chi.NewRouter()
	authMiddleware := NewMiddleware(authUC, authRequired)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	authHandler := NewAuthHandler(authUC)
	groupsHandler := NewGroupsHandler(groupsUC)
	notifyHandler := NewNotifyHandler(notifyUC)
	statusHandler := NewStatusHandler(statusUC)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/verify", authHandler.HandleVerify)
		})

		r.Get("/groups", groupsHandler.HandleList)
		r.Get("/test-mode", notifyHandler.HandleTestMode)
		r.Get("/status", statusHandler.HandleList)

		// Mutating routes require a dashboard token when auth is configured
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/notify", notifyHandler.HandleNotify)
			r.Put("/status/{groupNumber}", statusHandler.HandleSet)
			r.Get("/dispatches", notifyHandler.HandleDispatches)
		})
	})

	// Landing page; the dashboard UI itself is an external client
	router.Get("/", handleHome)

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "mandap",
	})
}

// handleHome handles the root path
func handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>mandap</title></head>
<body>
    <h1>mandap</h1>
    <p>Wedding photo session queue dashboard API</p>
    <p>See /api/groups, /api/status, /api/notify</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write home page", "error", err)
	}
}

// writeJSON writes a JSON response body
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response, mapping the error taxonomy to
// HTTP status codes
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case goerr.HasTag(err, model.ErrTagValidation):
		status = http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagAuth):
		status = http.StatusUnauthorized
	case goerr.HasTag(err, model.ErrTagConfig), goerr.HasTag(err, model.ErrTagUpstream):
		status = http.StatusInternalServerError
	}

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	ctxlog.From(ctx).Error("Request failed", "status", status, "error", err)
	writeJSON(ctx, w, status, map[string]string{"error": message})
}
