package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ap-imagine-web/internal/domain"
)

// generateImageRequest は POST /api/generate-image のリクエストボディです。
type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

// HandleGenerateImage は JSON API 経由の画像生成リクエストを処理します。
//
//	200: 生成結果 (imageUrl を必ず含む)
//	400: プロンプト欠落・空、またはボディ不正
//	502: 上流サービスの失敗
func (h *Handler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(ctx, "リクエストボディの解析に失敗しました", "error", err)
		writeJSONError(w, http.StatusBadRequest, "リクエストボディをJSONとして解釈できません")
		return
	}

	result, err := h.gateway.Generate(ctx, domain.GenerationRequest{Prompt: req.Prompt})
	if err != nil {
		h.writeGenerateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeGenerateError はゲートウェイのエラー種別をステータスコードへ対応付けます。
func (h *Handler) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if errors.Is(err, domain.ErrEmptyPrompt) {
		slog.WarnContext(ctx, "空のプロンプトが送信されました")
		writeJSONError(w, http.StatusBadRequest, "プロンプトを入力してください")
		return
	}

	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		slog.ErrorContext(ctx, "上流サービスの呼び出しに失敗しました", "provider", upErr.Provider, "error", upErr.Err)
		writeJSONError(w, http.StatusBadGateway, "画像の生成に失敗しました。時間をおいて再試行してください。")
		return
	}

	slog.ErrorContext(ctx, "画像生成で予期しないエラーが発生しました", "error", err)
	writeJSONError(w, http.StatusInternalServerError, "システムエラーが発生しました")
}
