package adapters

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	lastModel string
	lastParts []*genai.Part
	resp      *gemini.Response
	err       error
}

func (m *mockAIClient) UploadFile(ctx context.Context, r io.Reader, mimeType, displayName string) (string, string, error) {
	return "", "", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error {
	return nil
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	return nil, nil
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.lastModel = model
	m.lastParts = parts
	return m.resp, m.err
}

func (m *mockAIClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return nil, nil
}

func (m *mockAIClient) IsVertexAI() bool {
	return false
}

// inlineImageResponse はインライン画像を1枚含むレスポンスを組み立てるヘルパーです。
func inlineImageResponse(data []byte, mimeType string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
				},
			}},
		},
	}
}

type mockSaver struct {
	saved     [][]byte
	lastMime  string
	publicURL string
	err       error
}

func (m *mockSaver) Save(ctx context.Context, data []byte, mimeType string) (string, string, error) {
	m.saved = append(m.saved, data)
	m.lastMime = mimeType
	if m.err != nil {
		return "", "", m.err
	}
	return m.publicURL, "gs://bucket/output/x.png", nil
}

type mockImageAPI struct {
	lastReq openai.ImageRequest
	resp    openai.ImageResponse
	err     error
}

func (m *mockImageAPI) CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error) {
	m.lastReq = request
	return m.resp, m.err
}
