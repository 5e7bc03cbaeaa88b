package audit

import (
	"context"

	ai "github.com/Baru2006/EasyRecharge-MM/internal/pkg/ai-connector"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/metrics"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
	"github.com/google/generative-ai-go/genai"
)

// SlipReader is satisfied by *ai.AiClient.
type SlipReader interface {
	Enabled() bool
	GeminiPromptWithImageAndSchema(ctx context.Context, prompt string, image []byte, mimeType string, schema *genai.Schema) (*ai.PromptResult, error)
}

type Service struct {
	ctx     context.Context
	rp      repository.IRepository
	blob    storage.BlobStore
	reader  SlipReader
	metrics *metrics.ServerMetrics
}

type IService interface {
	HandleOrderSubmitted(ctx context.Context, evt events.OrderSubmitted) error
}

func NewService(ctx context.Context, rp repository.IRepository, blob storage.BlobStore, reader SlipReader, m *metrics.ServerMetrics) IService {
	return &Service{
		ctx:     ctx,
		rp:      rp,
		blob:    blob,
		reader:  reader,
		metrics: m,
	}
}
