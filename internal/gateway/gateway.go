package gateway

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ap-imagine-web/internal/adapters"
	"ap-imagine-web/internal/domain"
)

// Service は画像生成ゲートウェイです。プロンプトの検証、資格情報を保持した
// プロバイダへのちょうど1回の呼び出し、結果または構造化エラーの中継を担当します。
// リトライ・キャッシュ・レートリミットは行いません（失敗は即座に伝播します）。
type Service struct {
	generator   domain.ImageGenerator
	notifier    adapters.SlackNotifier
	provider    string
	styleSuffix string
	timeout     time.Duration
}

// NewService は Service を初期化します。notifier は nil を許容します。
func NewService(generator domain.ImageGenerator, notifier adapters.SlackNotifier, provider, styleSuffix string, timeout time.Duration) *Service {
	return &Service{
		generator:   generator,
		notifier:    notifier,
		provider:    provider,
		styleSuffix: styleSuffix,
		timeout:     timeout,
	}
}

// Generate はプロンプトを検証し、上流サービスを1回だけ呼び出します。
// 空のプロンプトは上流を呼ばずに domain.ErrEmptyPrompt を返します。
// 上流の失敗は *domain.UpstreamError として返します。
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	req.Prompt = prompt

	upstream := req
	if s.styleSuffix != "" {
		upstream.Prompt = prompt + ", " + s.styleSuffix
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.generator.Generate(genCtx, upstream)
	if err != nil {
		upErr := domain.NewUpstreamError(s.provider, err)
		s.notifyError(ctx, upErr, prompt)
		return nil, upErr
	}

	// レスポンスには表示用にユーザー入力どおりのプロンプトを残します。
	result.Prompt = prompt

	s.notifySuccess(ctx, result)
	return result, nil
}

// ModelName は使用中のモデル名を返します。
func (s *Service) ModelName() string {
	return s.generator.ModelName()
}

// notifySuccess はベストエフォートで完了通知を送信します。失敗してもログに留めます。
func (s *Service) notifySuccess(ctx context.Context, result *domain.GenerationResult) {
	if s.notifier == nil {
		return
	}
	req := domain.NotificationRequest{
		Prompt:         result.Prompt,
		OutputCategory: "generated-image",
		Provider:       s.provider + " / " + result.Model,
	}
	if err := s.notifier.Notify(ctx, result.ImageURL, domain.CategoryNotAvailable, req); err != nil {
		slog.WarnContext(ctx, "完了通知の送信に失敗しました", "error", err)
	}
}

// notifyError はベストエフォートでエラー通知を送信します。
func (s *Service) notifyError(ctx context.Context, cause error, prompt string) {
	if s.notifier == nil {
		return
	}
	req := domain.NotificationRequest{
		Prompt:         prompt,
		OutputCategory: domain.CategoryNotAvailable,
		Provider:       s.provider + " / " + s.generator.ModelName(),
	}
	if err := s.notifier.NotifyError(ctx, cause, req); err != nil {
		slog.WarnContext(ctx, "エラー通知の送信に失敗しました", "error", err)
	}
}
