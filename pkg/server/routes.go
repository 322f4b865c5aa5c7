// Package server exposes the AI service over HTTP.
package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/server/apihandlers"
	"github.com/cropwise/cropwise/pkg/server/handlertools"
)

const ReadHeaderTimeout = 5 * time.Second
const RouterName = "cropwise"

var log = internal.GetLogger()

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) *http.Server {
	cfg := appState.Config.Server
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           SetupRouter(appState),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

// SetupRouter mounts the AI routes under /api/ai and again at the root.
func SetupRouter(appState *models.AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		httpLogger.Logger("router", log),
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
		SendVersion,
		middleware.Heartbeat("/healthz"),
		MaxBodySize(appState.Config.Server.MaxRequestSize),
		otelchi.Middleware(
			RouterName,
			otelchi.WithChiRoutes(router),
			otelchi.WithRequestMethodInSpanName(true),
		),
	)

	router.NotFound(handlertools.RouteNotFound)
	router.MethodNotAllowed(handlertools.RouteNotFound)

	router.Get("/health", apihandlers.HealthHandler(appState))

	aiRoutes := func(r chi.Router) {
		r.Get("/status", apihandlers.StatusHandler(appState))
		r.Post("/recommend", apihandlers.RecommendHandler(appState))
		r.Post("/chat", apihandlers.ChatHandler(appState))
		r.Post("/knowledge", apihandlers.KnowledgeHandler(appState))
		r.Post("/search", apihandlers.SearchHandler(appState))
	}
	router.Route("/api/ai", aiRoutes)
	router.Group(aiRoutes)

	return router
}
