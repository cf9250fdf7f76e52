package server

import (
	"net/http"

	"ap-imagine-web/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(h *handlers.Handler) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, h *handlers.Handler) {
	// --- Web UI 用ルート ---
	r.Get("/", h.Index)
	r.Post("/generate", h.HandleSubmit)

	// --- JSON API (ゲートウェイ境界) ---
	r.Post("/api/generate-image", h.HandleGenerateImage)

	// --- 保存済み画像の配信 ---
	r.Get("/outputs/{name}", h.ServeOutput)
}
