package gemini

import (
	"context"
	"testing"

	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"
)

func TestGenAISchema(t *testing.T) {
	out := genaiSchema(predictor.OutputSchema(predictor.ReasoningText))

	require.NotNil(t, out)
	assert.Equal(t, genai.TypeArray, out.Type)
	require.NotNil(t, out.Items)
	assert.Equal(t, genai.TypeObject, out.Items.Type)
	assert.Equal(t, []string{"college_name", "admission_chance_percent", "reasoning"}, out.Items.PropertyOrdering)
	assert.Equal(t, genai.TypeString, out.Items.Properties["reasoning"].Type)
	assert.Equal(t, genai.TypeInteger, out.Items.Properties["admission_chance_percent"].Type)
}

func TestGenAISafetySettings(t *testing.T) {
	settings, err := genaiSafetySettings(testPolicy(t))
	require.NoError(t, err)

	require.Len(t, settings, 4)
	assert.Equal(t, genai.HarmCategoryHarassment, settings[0].Category)
	assert.Equal(t, genai.HarmBlockThresholdBlockNone, settings[0].Threshold)
	assert.Equal(t, genai.HarmCategoryDangerousContent, settings[3].Category)
	assert.Equal(t, genai.HarmBlockThresholdBlockLowAndAbove, settings[3].Threshold)
}

func TestGenAIClient_GenerateConfig(t *testing.T) {
	client, err := New(context.Background(), Config{
		APIKey:          "test-key",
		SDK:             SDKGenAI,
		Temperature:     0.2,
		MaxOutputTokens: 4096,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, SDKGenAI, client.Name())

	g, ok := client.(*GenAIClient)
	require.True(t, ok)
	assert.Equal(t, DefaultModel, g.cfg.Model)

	config, err := g.generateConfig(predictor.Request{
		Schema: predictor.OutputSchema(predictor.ReasoningStructured),
		Safety: testPolicy(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 1e-6)
	assert.Nil(t, config.TopP)
	assert.Equal(t, int32(4096), config.MaxOutputTokens)
	assert.Len(t, config.SafetySettings, 4)
}
