package adapters

import (
	"context"
	"fmt"
	"testing"

	"ap-imagine-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiAdapter_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("インライン画像を保存して配信URLを返す", func(t *testing.T) {
		ai := &mockAIClient{resp: inlineImageResponse([]byte("fake-png"), "image/png")}
		saver := &mockSaver{publicURL: "https://example.com/outputs/x.png"}

		adapter, err := NewGeminiAdapter(ai, saver, "gemini-2.5-flash-image")
		require.NoError(t, err)

		result, err := adapter.Generate(ctx, domain.GenerationRequest{Prompt: "a red bicycle"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/outputs/x.png", result.ImageURL)
		assert.Equal(t, "a red bicycle", result.Prompt)
		assert.Equal(t, "gemini-2.5-flash-image", result.Model)

		require.Len(t, saver.saved, 1)
		assert.Equal(t, []byte("fake-png"), saver.saved[0])
		assert.Equal(t, "image/png", saver.lastMime)

		require.Len(t, ai.lastParts, 1)
		assert.Equal(t, "a red bicycle", ai.lastParts[0].Text)
	})

	t.Run("上流エラーはそのまま包んで返す", func(t *testing.T) {
		ai := &mockAIClient{err: fmt.Errorf("quota exceeded")}
		adapter, err := NewGeminiAdapter(ai, &mockSaver{}, "gemini-2.5-flash-image")
		require.NoError(t, err)

		_, err = adapter.Generate(ctx, domain.GenerationRequest{Prompt: "a castle"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("画像データを含まないレスポンスはエラーになる", func(t *testing.T) {
		ai := &mockAIClient{resp: inlineImageResponse(nil, "image/png")}
		adapter, err := NewGeminiAdapter(ai, &mockSaver{}, "gemini-2.5-flash-image")
		require.NoError(t, err)

		_, err = adapter.Generate(ctx, domain.GenerationRequest{Prompt: "a castle"})

		assert.Error(t, err)
	})

	t.Run("保存失敗はエラーとして伝播する", func(t *testing.T) {
		ai := &mockAIClient{resp: inlineImageResponse([]byte("fake"), "image/png")}
		saver := &mockSaver{err: fmt.Errorf("bucket unavailable")}
		adapter, err := NewGeminiAdapter(ai, saver, "gemini-2.5-flash-image")
		require.NoError(t, err)

		_, err = adapter.Generate(ctx, domain.GenerationRequest{Prompt: "a castle"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket unavailable")
	})

	t.Run("依存関係の欠落は初期化エラーになる", func(t *testing.T) {
		_, err := NewGeminiAdapter(nil, &mockSaver{}, "model")
		assert.Error(t, err)

		_, err = NewGeminiAdapter(&mockAIClient{}, nil, "model")
		assert.Error(t, err)

		_, err = NewGeminiAdapter(&mockAIClient{}, &mockSaver{}, "")
		assert.Error(t, err)
	})
}
