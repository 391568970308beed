package server

import (
	"net/http"

	"gemini-forge/internal/builder"
	"gemini-forge/internal/config"
	"gemini-forge/internal/logger"
	"gemini-forge/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(cfg *config.Config, h *builder.AppHandlers) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r, cfg)
	setupRoutes(r, h.API, h.Metrics)

	return r
}

func setupCommonMiddleware(r *chi.Mux, cfg *config.Config) {
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(newCORS(cfg.CORSAllowedOrigins).Handler)
}

// newCORS はブラウザから /api を直接呼び出せるよう CORS を設定します。
func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{logger.RequestIDHeader},
	})
}

func setupRoutes(r chi.Router, apiHandler *handlers.Handler, metricsHandler http.Handler) {
	// --- 生成 API ---
	r.Route("/api", func(r chi.Router) {
		r.Post("/", apiHandler.HandleGenerate)
		r.Options("/", apiHandler.Options)
		r.Get("/options", apiHandler.APIOptions)
	})
	// 旧クライアント互換のエイリアス
	r.Post("/api.php", apiHandler.HandleGenerate)
	r.Options("/api.php", apiHandler.Options)

	// --- 運用 ---
	r.Get("/healthz", apiHandler.Healthz)
	r.Method(http.MethodGet, "/metrics", metricsHandler)
}
