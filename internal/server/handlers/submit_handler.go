package handlers

import (
	"log/slog"
	"net/http"
)

// HandleSubmit 画像生成リクエストのフォーム送信を処理します。
// コントローラーへの反映後はギャラリー画面へリダイレクトします (PRG)。
// 空プロンプトや送信中の再送信はコントローラー側で無害化されます。
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("フォームの解析に失敗しました", "error", err)
		http.Error(w, "リクエストの解析に失敗しました", http.StatusBadRequest)
		return
	}

	h.controller.SetPrompt(r.FormValue("prompt"))
	h.controller.Submit(r.Context())

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
