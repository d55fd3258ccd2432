package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env, an optional config.yaml and the environment, in that
// order of increasing precedence, then validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return load(v)
}

// load applies defaults and env overrides to v and unmarshals it.
func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// gemini.api_key <- GEMINI_API_KEY, server.port <- SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
		if cfg.App.Environment == "production" {
			cfg.Logging.Format = "json"
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "admissions-predictor")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-pro")
	v.SetDefault("gemini.sdk", "generative-ai-go")
	v.SetDefault("gemini.temperature", 0)
	v.SetDefault("gemini.top_p", 0)
	v.SetDefault("gemini.max_output_tokens", 0)

	v.SetDefault("predictor.timeout", predictor.DefaultTimeout.String())
	v.SetDefault("prompt.template", predictor.DefaultTemplate)

	for _, category := range predictor.HarmCategories {
		v.SetDefault("safety."+string(category), string(predictor.BlockMediumAndAbove))
	}

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Predictor.Timeout <= 0 {
		return errors.New("predictor.timeout must be positive")
	}
	switch cfg.Gemini.SDK {
	case "generative-ai-go", "genai":
	default:
		return fmt.Errorf("gemini.sdk must be generative-ai-go or genai, got %q", cfg.Gemini.SDK)
	}
	if _, err := predictor.LookupTemplate(cfg.Prompt.Template); err != nil {
		return err
	}
	if _, err := predictor.NewSafetyPolicy(cfg.Safety.Thresholds()); err != nil {
		return err
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0,1], got %v", cfg.Tracing.SampleRatio)
	}
	return nil
}

// loadEnvFile loads the first .env found in the working directory or the
// module root.
func loadEnvFile() {
	paths := []string{".env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
