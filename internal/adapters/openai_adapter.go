package adapters

import (
	"context"
	"fmt"
	"time"

	"ap-imagine-web/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// imageAPI は go-openai クライアントのうち画像生成に必要な操作だけを切り出したものです。
type imageAPI interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// OpenAIAdapter は OpenAI (DALL·E) を利用した domain.ImageGenerator の実装です。
// 上流がホスティング済みURLを返すため、そのまま中継します。
type OpenAIAdapter struct {
	client imageAPI
	model  string
	size   string
}

// NewOpenAIAdapter は API キーからクライアントを生成して初期化します。
func NewOpenAIAdapter(apiKey, model, size string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	return newOpenAIAdapter(openai.NewClient(apiKey), model, size)
}

func newOpenAIAdapter(client imageAPI, model, size string) (*OpenAIAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}

	return &OpenAIAdapter{
		client: client,
		model:  model,
		size:   size,
	}, nil
}

// Generate はプロンプトから画像を1枚生成し、上流のホスティングURLを返します。
func (a *OpenAIAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	resp, err := a.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          a.model,
		N:              1,
		Size:           a.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI画像生成エラー: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, fmt.Errorf("レスポンスに画像URLが含まれていません")
	}

	return &domain.GenerationResult{
		ImageURL:    resp.Data[0].URL,
		Prompt:      req.Prompt,
		Model:       a.model,
		GeneratedAt: time.Now(),
	}, nil
}

// ModelName は使用中のモデル名を返します。
func (a *OpenAIAdapter) ModelName() string {
	return a.model
}
