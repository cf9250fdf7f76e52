package builder

import (
	"context"
	"fmt"

	"ap-imagine-web/internal/adapters"
	"ap-imagine-web/internal/app"
	"ap-imagine-web/internal/config"
	"ap-imagine-web/internal/domain"
	"ap-imagine-web/internal/gateway"
	"ap-imagine-web/internal/session"
	"ap-imagine-web/internal/storage"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*app.Container, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(cfg.RequestTimeout)

	// 2. 通知アダプターの初期化
	slackNotifier, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	container := &app.Container{
		Config:        cfg,
		HTTPClient:    httpClient,
		SlackNotifier: slackNotifier,
	}

	// 3. プロバイダ別の画像生成アダプターの構築
	generator, err := buildGenerator(ctx, cfg, container)
	if err != nil {
		return nil, err
	}

	// 4. ゲートウェイとコントローラーの組み立て
	container.Gateway = gateway.NewService(generator, slackNotifier, cfg.ImageProvider, cfg.StyleSuffix, cfg.RequestTimeout)
	container.Controller = session.NewController(container.Gateway)

	return container, nil
}

// buildGenerator は設定されたプロバイダに応じた domain.ImageGenerator を構築します。
// Gemini はインライン画像を返すため、保存用の ImageStore も併せて初期化します。
func buildGenerator(ctx context.Context, cfg *config.Config, container *app.Container) (domain.ImageGenerator, error) {
	switch cfg.ImageProvider {
	case config.ProviderGemini:
		store, err := buildImageStore(ctx, cfg, container)
		if err != nil {
			return nil, err
		}

		aiClient, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
		}

		return adapters.NewGeminiAdapter(aiClient, store, cfg.ImageModel)

	case config.ProviderOpenAI:
		return adapters.NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.OpenAIImageModel, cfg.OpenAIImageSize)

	default:
		return nil, fmt.Errorf("unknown image provider: %s", cfg.ImageProvider)
	}
}

// buildImageStore は、GCS ベースの I/O コンポーネントを初期化します。
func buildImageStore(ctx context.Context, cfg *config.Config, container *app.Container) (*storage.ImageStore, error) {
	factory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS factory: %w", err)
	}
	reader, err := factory.InputReader()
	if err != nil {
		return nil, fmt.Errorf("failed to create input reader: %w", err)
	}
	writer, err := factory.OutputWriter()
	if err != nil {
		return nil, fmt.Errorf("failed to create output writer: %w", err)
	}
	signer, err := factory.URLSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to create URL signer: %w", err)
	}

	store, err := storage.NewImageStore(*cfg, reader, writer, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to create image store: %w", err)
	}

	container.IOFactory = factory
	container.Store = store
	return store, nil
}
