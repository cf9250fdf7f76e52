package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/shouni/netarmor/securenet"
)

// GetOutputPath は保存対象の画像オブジェクトの相対パスを返します。
// 例: "output/20260113_150405_ab12cd34.png"
func (c Config) GetOutputPath(name string) string {
	return path.Join(c.BaseOutputDir, name)
}

// GetGCSObjectURL は、指定されたパスから完全なGCSオブジェクトURL ("gs://...") を組み立てます。
// pathが既に "gs://" プレフィックスを持つ場合は、そのままpathを返します。
// c.GCSImageBucketが空文字列の場合、この関数は引数で与えられたpathをそのまま返します。
// これはローカルファイルシステムでの実行など、GCSを使用しないシナリオを想定しています。
func (c Config) GetGCSObjectURL(path string) string {
	if strings.HasPrefix(path, "gs://") {
		return path
	}
	if c.GCSImageBucket != "" {
		return fmt.Sprintf("gs://%s/%s", c.GCSImageBucket, path)
	}

	return path
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
// 選択中プロバイダの資格情報が未設定の場合は起動時に失敗させます。
func ValidateEssentialConfig(cfg *Config) error {
	if !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}

	switch cfg.ImageProvider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("configuration error: GEMINI_API_KEY is not set")
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("configuration error: OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("configuration error: unknown IMAGE_PROVIDER '%s'", cfg.ImageProvider)
	}

	if cfg.BaseOutputDir == "" || strings.Trim(cfg.BaseOutputDir, "/") == "" {
		return fmt.Errorf("configuration error: BASE_OUTPUT_DIR must not be empty")
	}

	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("configuration error: REQUEST_TIMEOUT must be positive")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
