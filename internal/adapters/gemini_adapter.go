package adapters

import (
	"context"
	"fmt"
	"time"

	"ap-imagine-web/internal/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ImageSaver は生成済み画像バイト列の保存先を抽象化します。
// storage.ImageStore がこのインターフェースを満たします。
type ImageSaver interface {
	Save(ctx context.Context, data []byte, mimeType string) (publicURL, storageURI string, err error)
}

// GeminiAdapter は Gemini API を利用した domain.ImageGenerator の実装です。
// Gemini はインライン画像バイト列を返すため、保存してから配信URLを組み立てます。
type GeminiAdapter struct {
	aiClient gemini.GenerativeModel
	store    ImageSaver
	model    string
}

// NewGeminiAdapter は GeminiAdapter を初期化します。
func NewGeminiAdapter(aiClient gemini.GenerativeModel, store ImageSaver, model string) (*GeminiAdapter, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store (ImageSaver) is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &GeminiAdapter{
		aiClient: aiClient,
		store:    store,
		model:    model,
	}, nil
}

// Generate はプロンプトから画像を1枚生成し、保存済み画像の配信URLを返します。
func (a *GeminiAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
	}

	resp, err := a.aiClient.GenerateWithParts(ctx, a.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
	}

	data, mimeType, err := extractInlineImage(resp)
	if err != nil {
		return nil, err
	}

	publicURL, _, err := a.store.Save(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}

	return &domain.GenerationResult{
		ImageURL:    publicURL,
		Prompt:      req.Prompt,
		Model:       a.model,
		GeneratedAt: time.Now(),
	}, nil
}

// ModelName は使用中のモデル名を返します。
func (a *GeminiAdapter) ModelName() string {
	return a.model
}

// extractInlineImage はレスポンス候補から最初のインライン画像を取り出します。
func extractInlineImage(resp *gemini.Response) ([]byte, string, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, "", fmt.Errorf("上流から有効なレスポンスが得られませんでした")
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return nil, "", fmt.Errorf("レスポンスにコンテンツが含まれていません")
	}

	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, part.InlineData.MIMEType, nil
		}
	}

	return nil, "", fmt.Errorf("レスポンスに画像データが含まれていません")
}
