package domain

const CategoryNotAvailable = "N/A"

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 生成された画像のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// Prompt は、画像生成に使用されたプロンプトです。
	Prompt string `json:"prompt"`

	// OutputCategory は、出力先の種別です。(例: "generated-image")
	OutputCategory string `json:"output_category"`

	// Provider は、生成を実行したプロバイダとモデルです。(例: "gemini / gemini-2.5-flash-image")
	Provider string `json:"provider"`
}
