package config

import (
	"log/slog"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ProviderGemini は Gemini API による画像生成プロバイダです。
	ProviderGemini = "gemini"
	// ProviderOpenAI は OpenAI (DALL·E) による画像生成プロバイダです。
	ProviderOpenAI = "openai"

	DefaultImageModel       = "gemini-2.5-flash-image"
	DefaultOpenAIImageModel = "dall-e-3"
	DefaultOpenAIImageSize  = "1024x1024"
	// DefaultRequestTimeout 画像生成APIの応答を考慮したタイムアウト
	DefaultRequestTimeout = 60 * time.Second
	// SignedURLExpiration 生成された画像を確認する時間を考慮した有効期限
	SignedURLExpiration = 5 * time.Minute
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL string
	Port       string

	// Image Generation Settings
	ImageProvider    string // "gemini" または "openai"
	GeminiAPIKey     string
	ImageModel       string // Gemini 画像生成モデル
	OpenAIAPIKey     string
	OpenAIImageModel string
	OpenAIImageSize  string
	StyleSuffix      string // プロンプト末尾に付与する画風指定 (任意)

	// Storage Settings
	GCSImageBucket      string // 生成画像を保存するバケット (空ならローカル相対パス)
	BaseOutputDir       string // 保存先のベースルート (例: "output")
	SignedURLExpiration time.Duration

	// Notification
	SlackWebhookURL string

	TemplateDir     string // HTMLテンプレートの格納ディレクトリ
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
// .env ファイルが存在する場合は先に読み込みます（存在しなくてもエラーにはしません）。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env ファイルは読み込まれませんでした", "reason", err)
	}

	// 実行環境（Cloud Run, ko）に応じたパスの解決
	baseDir := "."
	if os.Getenv("KO_DATA_PATH") != "" || os.Getenv("K_SERVICE") != "" {
		baseDir = "/app"
	}

	return &Config{
		ServiceURL: getEnv("SERVICE_URL", "http://localhost:8080"),
		Port:       getEnv("PORT", "8080"),

		ImageProvider:    getEnv("IMAGE_PROVIDER", ProviderGemini),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		ImageModel:       getEnv("IMAGE_MODEL", DefaultImageModel),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", DefaultOpenAIImageModel),
		OpenAIImageSize:  getEnv("OPENAI_IMAGE_SIZE", DefaultOpenAIImageSize),
		StyleSuffix:      getEnv("STYLE_SUFFIX", ""),

		GCSImageBucket:      getEnv("GCS_IMAGE_BUCKET", ""),
		BaseOutputDir:       getEnv("BASE_OUTPUT_DIR", "output"),
		SignedURLExpiration: SignedURLExpiration,

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),

		TemplateDir:     path.Join(baseDir, "templates"),
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsDuration は秒数指定 ("60") と Duration 表記 ("60s") の両方を受け付けます。
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	slog.Warn("環境変数の時間指定を解釈できないため既定値を使用します", "key", key, "value", value)
	return fallback
}
