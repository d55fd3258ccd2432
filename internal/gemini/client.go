package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient talks to Gemini through github.com/google/generative-ai-go.
type GeminiClient struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg Config, log *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		cfg:    cfg,
		logger: log.Named("gemini").With(zap.String("sdk", SDKGenerativeAI), zap.String("model", cfg.Model)),
	}, nil
}

func (g *GeminiClient) Name() string {
	return SDKGenerativeAI
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Generate builds a fresh model per call so concurrent requests never share
// generation settings.
func (g *GeminiClient) Generate(ctx context.Context, req predictor.Request) (string, error) {
	model, err := g.model(req)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			g.logger.Warn("response blocked by safety filter", zap.Error(err))
			return "", nil
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp), nil
}

func (g *GeminiClient) model(req predictor.Request) (*genai.GenerativeModel, error) {
	safety, err := legacySafetySettings(req.Safety)
	if err != nil {
		return nil, err
	}

	model := g.client.GenerativeModel(g.cfg.Model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = legacySchema(req.Schema)
	model.SafetySettings = safety

	if g.cfg.Temperature > 0 {
		model.SetTemperature(g.cfg.Temperature)
	}
	if g.cfg.TopP > 0 {
		model.SetTopP(g.cfg.TopP)
	}
	if g.cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(g.cfg.MaxOutputTokens)
	}
	return model, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func legacySchema(s *predictor.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        legacyType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       legacySchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = legacySchema(prop)
		}
	}
	return out
}

func legacyType(t predictor.Type) genai.Type {
	switch t {
	case predictor.TypeString:
		return genai.TypeString
	case predictor.TypeInteger:
		return genai.TypeInteger
	case predictor.TypeNumber:
		return genai.TypeNumber
	case predictor.TypeBoolean:
		return genai.TypeBoolean
	case predictor.TypeArray:
		return genai.TypeArray
	case predictor.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

var legacyCategories = map[predictor.HarmCategory]genai.HarmCategory{
	predictor.HarmHarassment:       genai.HarmCategoryHarassment,
	predictor.HarmHateSpeech:       genai.HarmCategoryHateSpeech,
	predictor.HarmSexuallyExplicit: genai.HarmCategorySexuallyExplicit,
	predictor.HarmDangerousContent: genai.HarmCategoryDangerousContent,
}

var legacyThresholds = map[predictor.Threshold]genai.HarmBlockThreshold{
	predictor.BlockNone:           genai.HarmBlockNone,
	predictor.BlockOnlyHigh:       genai.HarmBlockOnlyHigh,
	predictor.BlockMediumAndAbove: genai.HarmBlockMediumAndAbove,
	predictor.BlockLowAndAbove:    genai.HarmBlockLowAndAbove,
}

func legacySafetySettings(policy predictor.SafetyPolicy) ([]*genai.SafetySetting, error) {
	settings := make([]*genai.SafetySetting, 0, len(policy))
	for _, category := range predictor.HarmCategories {
		threshold, ok := policy[category]
		if !ok {
			continue
		}
		c, ok := legacyCategories[category]
		if !ok {
			return nil, fmt.Errorf("unsupported harm category %q", category)
		}
		t, ok := legacyThresholds[threshold]
		if !ok {
			return nil, fmt.Errorf("unsupported safety threshold %q", threshold)
		}
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: t})
	}
	return settings, nil
}
