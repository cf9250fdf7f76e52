package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"ap-imagine-web/internal/domain"
)

// Generator はコントローラーが利用するゲートウェイ側の操作です。
// gateway.Service がこのインターフェースを満たします。
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

// UIState は画面描画が参照する唯一の状態です。
// 変更は Controller の遷移関数を通じてのみ行われます。
type UIState struct {
	// Prompt は編集中のプロンプトテキストです。
	Prompt string
	// CurrentImageURL は直近の生成に成功した画像URLです。
	CurrentImageURL string
	// History は生成済み画像URLの新しい順のリストです。追記のみで削除されません。
	History []string
	// IsLoading はリクエスト送信から結果到着までの間だけ true になります。
	IsLoading bool
	// LastError は直近の失敗メッセージです。成功または再送信でクリアされます。
	LastError string
}

// Controller はプロンプト編集と生成履歴の状態機械です。
// idle → submitting → (succeeded | failed) → idle のループを駆動し、
// 同時に在空中(in-flight)のリクエストを高々1件に制限します。
type Controller struct {
	mu        sync.Mutex
	state     UIState
	generator Generator
	subs      []func(UIState)
}

// NewController は空の初期状態でコントローラーを生成します。
func NewController(generator Generator) *Controller {
	return &Controller{
		generator: generator,
		state:     UIState{History: []string{}},
	}
}

// SetPrompt はプロンプトを更新します。どの状態でも受け付けますが、
// 送信済みのリクエストには影響しません。
func (c *Controller) SetPrompt(text string) {
	c.mu.Lock()
	c.state.Prompt = text
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// Submit はプロンプトを送信し、結果を履歴へ反映します。
// 既に送信中の場合、またはプロンプトが空白のみの場合は何もしません。
// ゲートウェイ呼び出しの前に IsLoading=true を確定させるため、
// 直後の描画で必ずローディング表示が観測できます。
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.IsLoading {
		c.mu.Unlock()
		slog.DebugContext(ctx, "送信中のため新しい送信を無視します")
		return
	}
	prompt := strings.TrimSpace(c.state.Prompt)
	if prompt == "" {
		c.mu.Unlock()
		return
	}

	c.state.IsLoading = true
	c.state.LastError = ""
	loading := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(loading)

	// 通信中に保持するロックはありません。状態変更は到着時に一括で行います。
	result, err := c.generator.Generate(ctx, domain.GenerationRequest{Prompt: prompt})

	c.mu.Lock()
	c.state.IsLoading = false
	if err != nil {
		// 失敗時はプロンプトと履歴を保持したまま idle に戻ります。
		c.state.LastError = err.Error()
	} else {
		c.state.History = append([]string{result.ImageURL}, c.state.History...)
		c.state.CurrentImageURL = result.ImageURL
	}
	done := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(done)
}

// Snapshot は描画用に状態の独立したコピーを返します。
func (c *Controller) Snapshot() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe は状態遷移のたびに呼び出されるコールバックを登録します。
func (c *Controller) Subscribe(fn func(UIState)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Controller) snapshotLocked() UIState {
	snapshot := c.state
	snapshot.History = append([]string(nil), c.state.History...)
	return snapshot
}

func (c *Controller) publish(snapshot UIState) {
	c.mu.Lock()
	subs := append([](func(UIState))(nil), c.subs...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
