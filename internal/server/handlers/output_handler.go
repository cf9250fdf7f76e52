package handlers

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
)

// ServeOutput は保存済みの生成画像を配信します。
// GCS バケット未設定のローカル実行時に、同一オリジンでの画像表示を担います。
func (h *Handler) ServeOutput(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	if !validObjectName.MatchString(name) {
		slog.WarnContext(ctx, "画像のリクエストパスが不正です", "name", name)
		http.Error(w, "不正なパスです", http.StatusBadRequest)
		return
	}

	if h.store == nil {
		http.Error(w, "画像の保存機能は無効です", http.StatusNotFound)
		return
	}

	rc, err := h.store.Open(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "保存済み画像が見つかりません", "name", name, "error", err)
		http.Error(w, "画像が見つかりません", http.StatusNotFound)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, rc); err != nil {
		slog.ErrorContext(ctx, "画像レスポンスの書き込みに失敗しました", "name", name, "error", err)
	}
}
