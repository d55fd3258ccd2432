package config

import "time"

// Config is the service configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Predictor PredictorConfig `mapstructure:"predictor"`
	Prompt    PromptConfig    `mapstructure:"prompt"`
	Safety    SafetyConfig    `mapstructure:"safety"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	SDK             string  `mapstructure:"sdk"`
	Temperature     float32 `mapstructure:"temperature"`
	TopP            float32 `mapstructure:"top_p"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
}

type PredictorConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type PromptConfig struct {
	Template string `mapstructure:"template"`
}

// SafetyConfig holds one threshold name per harm category.
type SafetyConfig struct {
	Harassment       string `mapstructure:"harassment"`
	HateSpeech       string `mapstructure:"hate_speech"`
	SexuallyExplicit string `mapstructure:"sexually_explicit"`
	DangerousContent string `mapstructure:"dangerous_content"`
}

// Thresholds returns the thresholds keyed by harm category name.
func (s SafetyConfig) Thresholds() map[string]string {
	return map[string]string{
		"harassment":        s.Harassment,
		"hate_speech":       s.HateSpeech,
		"sexually_explicit": s.SexuallyExplicit,
		"dangerous_content": s.DangerousContent,
	}
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}
