package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ap-imagine-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockGenerator struct {
	mu      sync.Mutex
	calls   []string
	results map[string]string // prompt -> imageURL
	err     error
	block   chan struct{} // 非nilの場合、closeされるまでGenerateをブロック
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req.Prompt)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}

	if m.err != nil {
		return nil, m.err
	}

	url := m.results[req.Prompt]
	if url == "" {
		url = "https://img/" + req.Prompt
	}
	return &domain.GenerationResult{
		ImageURL:    url,
		Prompt:      req.Prompt,
		Model:       "test-model",
		GeneratedAt: time.Now(),
	}, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("成功時は履歴の先頭に追加され最新画像が更新される", func(t *testing.T) {
		gen := &mockGenerator{results: map[string]string{"a red bicycle": "https://img/1"}}
		c := NewController(gen)

		c.SetPrompt("a red bicycle")
		c.Submit(ctx)

		state := c.Snapshot()
		assert.False(t, state.IsLoading)
		assert.Equal(t, "https://img/1", state.CurrentImageURL)
		assert.Equal(t, []string{"https://img/1"}, state.History)
		assert.Empty(t, state.LastError)
	})

	t.Run("空のプロンプトは送信されずゲートウェイも呼ばれない", func(t *testing.T) {
		gen := &mockGenerator{}
		c := NewController(gen)

		c.SetPrompt("")
		c.Submit(ctx)

		state := c.Snapshot()
		assert.Zero(t, gen.callCount(), "空プロンプトで上流が呼ばれてはいけない")
		assert.False(t, state.IsLoading)
		assert.Empty(t, state.History)
	})

	t.Run("空白のみのプロンプトも何もしない", func(t *testing.T) {
		gen := &mockGenerator{}
		c := NewController(gen)

		c.SetPrompt("   \t  ")
		c.Submit(ctx)

		assert.Zero(t, gen.callCount())
		assert.Empty(t, c.Snapshot().History)
	})

	t.Run("失敗時は履歴が変化せずプロンプトが保持されエラーが表示される", func(t *testing.T) {
		gen := &mockGenerator{err: fmt.Errorf("upstream returned 500")}
		c := NewController(gen)

		c.SetPrompt("a castle")
		c.Submit(ctx)

		state := c.Snapshot()
		assert.False(t, state.IsLoading)
		assert.Empty(t, state.History)
		assert.Equal(t, "a castle", state.Prompt, "失敗してもプロンプトはクリアされない")
		assert.NotEmpty(t, state.LastError)
	})

	t.Run("連続成功で履歴は新しい順に並ぶ", func(t *testing.T) {
		gen := &mockGenerator{results: map[string]string{
			"cat": "https://img/cat-url",
			"dog": "https://img/dog-url",
		}}
		c := NewController(gen)

		c.SetPrompt("cat")
		c.Submit(ctx)
		c.SetPrompt("dog")
		c.Submit(ctx)

		state := c.Snapshot()
		require.Len(t, state.History, 2)
		assert.Equal(t, []string{"https://img/dog-url", "https://img/cat-url"}, state.History)
		assert.Equal(t, state.History[0], state.CurrentImageURL, "最新画像は常に履歴の先頭と一致する")
	})

	t.Run("失敗後の再送信は成功1回分と同じ履歴になる", func(t *testing.T) {
		gen := &mockGenerator{err: fmt.Errorf("temporary failure")}
		c := NewController(gen)

		c.SetPrompt("a castle")
		c.Submit(ctx)
		require.Empty(t, c.Snapshot().History)

		// 上流が回復してから同じプロンプトを再送信
		gen.err = nil
		c.Submit(ctx)

		state := c.Snapshot()
		assert.Equal(t, []string{"https://img/a castle"}, state.History, "失敗分の幽霊エントリが残ってはいけない")
		assert.Empty(t, state.LastError)
	})
}

func TestController_SingleInFlight(t *testing.T) {
	ctx := context.Background()

	t.Run("送信中の再送信は無視される", func(t *testing.T) {
		block := make(chan struct{})
		gen := &mockGenerator{block: block}
		c := NewController(gen)
		c.SetPrompt("slow prompt")

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Submit(ctx)
		}()

		// 1件目が在空中になるまで待機
		require.Eventually(t, func() bool {
			return c.Snapshot().IsLoading
		}, time.Second, time.Millisecond)

		// 2件目はブロックせず即座に無視される
		c.Submit(ctx)

		close(block)
		wg.Wait()

		assert.Equal(t, 1, gen.callCount(), "在空中のリクエストは高々1件")
		assert.Len(t, c.Snapshot().History, 1)
	})
}

func TestController_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("購読者は結果到着前にローディング状態を観測できる", func(t *testing.T) {
		gen := &mockGenerator{}
		c := NewController(gen)

		var mu sync.Mutex
		var seen []UIState
		c.Subscribe(func(s UIState) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		})

		c.SetPrompt("a red bicycle")
		c.Submit(ctx)

		mu.Lock()
		defer mu.Unlock()
		// SetPrompt, 送信開始, 結果到着 の3遷移
		require.Len(t, seen, 3)
		assert.True(t, seen[1].IsLoading, "ゲートウェイ呼び出し前にIsLoading=trueが通知される")
		assert.Empty(t, seen[1].History)
		assert.False(t, seen[2].IsLoading)
		assert.Len(t, seen[2].History, 1)
	})

	t.Run("スナップショットの履歴は内部状態から独立している", func(t *testing.T) {
		gen := &mockGenerator{}
		c := NewController(gen)
		c.SetPrompt("cat")
		c.Submit(ctx)

		snapshot := c.Snapshot()
		snapshot.History[0] = "tampered"

		assert.NotEqual(t, "tampered", c.Snapshot().History[0])
	})
}
