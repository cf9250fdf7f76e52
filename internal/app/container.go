package app

import (
	"log/slog"

	"ap-imagine-web/internal/adapters"
	"ap-imagine-web/internal/config"
	"ap-imagine-web/internal/gateway"
	"ap-imagine-web/internal/session"
	"ap-imagine-web/internal/storage"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Container はアプリケーションの依存関係（DIコンテナ）を保持します。
type Container struct {
	Config *config.Config

	// I/O and Storage
	IOFactory remoteio.IOFactory
	Store     *storage.ImageStore // Gemini プロバイダ利用時のみ非 nil

	// Business Logic
	Gateway    *gateway.Service
	Controller *session.Controller

	// External Adapters
	HTTPClient    httpkit.ClientInterface
	SlackNotifier adapters.SlackNotifier
}

// Close は、Container が保持するすべての外部接続リソースを安全に解放します。
func (c *Container) Close() {
	if c.IOFactory != nil {
		if err := c.IOFactory.Close(); err != nil {
			slog.Error("failed to close IOFactory", "error", err)
		}
	}
}
