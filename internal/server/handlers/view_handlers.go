package handlers

import (
	"net/http"

	"ap-imagine-web/internal/session"
)

// galleryData はテンプレート「index.html」に渡すためのデータ構造体
type galleryData struct {
	State session.UIState
	Model string
}

// Index はプロンプト入力フォームと生成履歴ギャラリーを表示します。
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := galleryData{
		State: h.controller.Snapshot(),
		Model: h.gateway.ModelName(),
	}
	h.render(w, http.StatusOK, "index.html", "Generate", data)
}
