package gemini

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GenAIClient talks to Gemini through the unified google.golang.org/genai SDK.
type GenAIClient struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

func NewGenAIClient(ctx context.Context, cfg Config, log *zap.Logger) (*GenAIClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIClient{
		client: client,
		cfg:    cfg,
		logger: log.Named("gemini").With(zap.String("sdk", SDKGenAI), zap.String("model", cfg.Model)),
	}, nil
}

func (g *GenAIClient) Name() string {
	return SDKGenAI
}

// Close is a no-op; the genai client holds no resources that need releasing.
func (g *GenAIClient) Close() error {
	return nil
}

func (g *GenAIClient) Generate(ctx context.Context, req predictor.Request) (string, error) {
	config, err := g.generateConfig(req)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		g.logger.Warn("prompt blocked by safety filter",
			zap.String("block_reason", string(resp.PromptFeedback.BlockReason)))
		return "", nil
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		g.logger.Warn("response blocked by safety filter")
		return "", nil
	}

	return resp.Text(), nil
}

func (g *GenAIClient) generateConfig(req predictor.Request) (*genai.GenerateContentConfig, error) {
	safety, err := genaiSafetySettings(req.Safety)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   genaiSchema(req.Schema),
		SafetySettings:   safety,
	}
	if g.cfg.Temperature > 0 {
		config.Temperature = genai.Ptr(g.cfg.Temperature)
	}
	if g.cfg.TopP > 0 {
		config.TopP = genai.Ptr(g.cfg.TopP)
	}
	if g.cfg.MaxOutputTokens > 0 {
		config.MaxOutputTokens = g.cfg.MaxOutputTokens
	}
	return config, nil
}

func genaiSchema(s *predictor.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:             genai.Type(s.Type),
		Description:      s.Description,
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrdering,
		Items:            genaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = genaiSchema(prop)
		}
	}
	return out
}

var genaiCategories = map[predictor.HarmCategory]genai.HarmCategory{
	predictor.HarmHarassment:       genai.HarmCategoryHarassment,
	predictor.HarmHateSpeech:       genai.HarmCategoryHateSpeech,
	predictor.HarmSexuallyExplicit: genai.HarmCategorySexuallyExplicit,
	predictor.HarmDangerousContent: genai.HarmCategoryDangerousContent,
}

var genaiThresholds = map[predictor.Threshold]genai.HarmBlockThreshold{
	predictor.BlockNone:           genai.HarmBlockThresholdBlockNone,
	predictor.BlockOnlyHigh:       genai.HarmBlockThresholdBlockOnlyHigh,
	predictor.BlockMediumAndAbove: genai.HarmBlockThresholdBlockMediumAndAbove,
	predictor.BlockLowAndAbove:    genai.HarmBlockThresholdBlockLowAndAbove,
}

func genaiSafetySettings(policy predictor.SafetyPolicy) ([]*genai.SafetySetting, error) {
	settings := make([]*genai.SafetySetting, 0, len(policy))
	for _, category := range predictor.HarmCategories {
		threshold, ok := policy[category]
		if !ok {
			continue
		}
		c, ok := genaiCategories[category]
		if !ok {
			return nil, fmt.Errorf("unsupported harm category %q", category)
		}
		t, ok := genaiThresholds[threshold]
		if !ok {
			return nil, fmt.Errorf("unsupported safety threshold %q", threshold)
		}
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: t})
	}
	return settings, nil
}
