package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrNotConfigured = errors.New("gemini slip reader is not configured")

const (
	defaultCallTimeout = 60 * time.Second
	// low temperature keeps the extracted numbers stable across retries
	temperature float32 = 0.1
)

type PromptResult struct {
	Response string
	Tokens   int
	Latency  time.Duration
}

// AiClient sends slip images to Gemini. The zero client and a nil
// *AiClient are both valid and report Enabled() == false.
type AiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	// CallTimeout bounds a single generate call.
	CallTimeout time.Duration
}

func NewAiClient(ctx context.Context, cfg *Config) (*AiClient, error) {
	if cfg == nil || cfg.GeminiAPIKey == "" || cfg.GeminiModel == "" {
		return &AiClient{}, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return &AiClient{}, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &AiClient{client: client, model: cfg.GeminiModel, timeout: timeout}, nil
}

func (a *AiClient) Enabled() bool {
	return a != nil && a.client != nil
}

// GeminiPromptWithImageAndSchema sends prompt plus one image and asks for
// JSON shaped by schema.
func (a *AiClient) GeminiPromptWithImageAndSchema(ctx context.Context, prompt string, image []byte, mimeType string, schema *genai.Schema) (*PromptResult, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}

	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" || format == mimeType {
		format = "jpeg"
	}

	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(temperature)
	if schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = schema
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, image))
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", a.model, err)
	}

	result := &PromptResult{Latency: time.Since(start)}
	if resp.UsageMetadata != nil {
		result.Tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
		break
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("gemini %s returned no text", a.model)
	}
	result.Response = text.String()
	return result, nil
}

func (a *AiClient) Close() error {
	if !a.Enabled() {
		return nil
	}
	return a.client.Close()
}
