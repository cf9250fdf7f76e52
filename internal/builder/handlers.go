package builder

import (
	"fmt"

	"ap-imagine-web/internal/app"
	"ap-imagine-web/internal/server/handlers"
)

// BuildHandlers は HTTP ハンドラーの依存関係を組み立てます。
// server パッケージはこの戻り値を受け取ってルーティングを行います。
func BuildHandlers(container *app.Container) (*handlers.Handler, error) {
	h, err := handlers.NewHandler(container.Config, container.Controller, container.Gateway, container.Store)
	if err != nil {
		return nil, fmt.Errorf("WebHandlerの初期化に失敗しました: %w", err)
	}
	return h, nil
}
