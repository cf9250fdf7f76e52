package domain

import (
	"context"
	"time"
)

// GenerationRequest は、1回の画像生成要求を表します。
// 送信時に構築され、以降は変更されません。
type GenerationRequest struct {
	// Prompt はユーザーが入力した生成指示テキストです。
	Prompt string `json:"prompt"`
	// AspectRatio は生成画像の縦横比です。(例: "1:1", "16:9"、空ならプロバイダ既定)
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// GenerationResult は、画像生成サービスが返した成果物のメタデータです。
// 生成後に変更されることはありません。
type GenerationResult struct {
	// ImageURL は生成画像を表示するためのURLです。
	// (上流が返したホスティングURL、または保存済み画像の配信URL)
	ImageURL string `json:"imageUrl"`
	// Prompt は生成に使用されたプロンプトです。
	Prompt string `json:"prompt"`
	// Model は実際に使用されたモデル名です。
	Model string `json:"model"`
	// GeneratedAt は生成完了時刻 (RFC3339) です。
	GeneratedAt time.Time `json:"generatedAt"`
}

// ImageGenerator は、外部の画像生成サービス1回分の呼び出しを抽象化します。
// 実装はアダプター層 (Gemini / OpenAI) が提供します。
type ImageGenerator interface {
	// Generate はプロンプトから画像を1枚生成します。リトライは行いません。
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
	// ModelName は使用中のモデル名を返します。
	ModelName() string
}
