package domain

import (
	"errors"
	"fmt"
)

// ドメイン固有のエラー定義
var (
	// ErrEmptyPrompt は、プロンプトが空または空白のみの場合のエラーです。
	// 上流API呼び出しの前にゲートウェイ境界で検出されます。
	ErrEmptyPrompt = errors.New("プロンプトが空です")
)

// UpstreamError は、外部画像生成サービスの呼び出し失敗を表します。
// ネットワークエラー、非 2xx ステータス、不正なレスポンスを区別せずに包みます。
type UpstreamError struct {
	// Provider は失敗したプロバイダ名です。(例: "gemini", "openai")
	Provider string
	// Err は元のエラーです。
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("上流サービス (%s) の呼び出しに失敗しました: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError は上流呼び出しの失敗を UpstreamError として包みます。
func NewUpstreamError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}
