package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/admissions-predictor/internal/api"
	"github.com/BerylCAtieno/admissions-predictor/internal/config"
	"github.com/BerylCAtieno/admissions-predictor/internal/gemini"
	"github.com/BerylCAtieno/admissions-predictor/internal/logger"
	"github.com/BerylCAtieno/admissions-predictor/internal/observability"
	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Error("Server exited with error", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	_ = zlog.Sync()
}

// run wires the service and blocks until it stops.
func run(cfg *config.Config, zlog *zap.Logger) error {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, zlog, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			zlog.Error("Tracing shutdown failed", zap.Error(err))
		}
	}()

	geminiClient, err := gemini.New(ctx, gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		SDK:             cfg.Gemini.SDK,
		Temperature:     cfg.Gemini.Temperature,
		TopP:            cfg.Gemini.TopP,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, zlog)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer geminiClient.Close()

	tmpl, err := predictor.LookupTemplate(cfg.Prompt.Template)
	if err != nil {
		return fmt.Errorf("invalid prompt template: %w", err)
	}
	safety, err := predictor.NewSafetyPolicy(cfg.Safety.Thresholds())
	if err != nil {
		return fmt.Errorf("invalid safety policy: %w", err)
	}

	p, err := predictor.New(geminiClient, predictor.Config{
		Template: tmpl,
		Safety:   safety,
		Timeout:  cfg.Predictor.Timeout,
	}, zlog)
	if err != nil {
		return fmt.Errorf("failed to create predictor: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		ServiceName:       cfg.App.Name,
		PredictionHandler: api.NewPredictionHandler(p, zlog),
		Logger:            zlog,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Predictor.Timeout + 15*time.Second,
	}

	zlog.Info(fmt.Sprintf("Server is running on http://localhost:%d", cfg.Server.Port),
		zap.String("model", cfg.Gemini.Model),
		zap.String("sdk", geminiClient.Name()),
		zap.String("template", tmpl.Name),
		zap.String("template_description", tmpl.Description),
	)
	return serve(ctx, srv, cfg.Server.ShutdownTimeout, zlog)
}

// serve runs srv until ctx is cancelled or the listener fails. A listen
// error is returned to the caller instead of exiting the process.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, zlog *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		zlog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
