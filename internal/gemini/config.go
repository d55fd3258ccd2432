package gemini

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"go.uber.org/zap"
)

const (
	SDKGenerativeAI = "generative-ai-go"
	SDKGenAI        = "genai"

	DefaultModel = "gemini-2.5-pro"
)

type Config struct {
	APIKey          string
	Model           string
	SDK             string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// Client is a predictor backend that owns an SDK connection.
type Client interface {
	predictor.Backend
	Close() error
}

// New returns the client for cfg.SDK. An empty SDK selects generative-ai-go.
func New(ctx context.Context, cfg Config, log *zap.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	switch cfg.SDK {
	case "", SDKGenerativeAI:
		return NewGeminiClient(ctx, cfg, log)
	case SDKGenAI:
		return NewGenAIClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown gemini sdk %q", cfg.SDK)
	}
}
