package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ailife/cmd/game/ui"
	"ailife/internal/debug"
	"ailife/internal/engine"
	"ailife/internal/llm"
	"ailife/internal/logging"
	"ailife/internal/observability"
	"ailife/internal/storage"
)

const snapshotPath = "ailife.json"

type app struct {
	store   *storage.Store
	llm     *llm.Service
	engine  *engine.Engine
	debug   *debug.Logger
	cleanup func()
}

func createApp() (*app, error) {
	_ = godotenv.Load()

	debugMode := os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
	debugLogger := debug.NewLogger(debugMode)

	ctx := context.Background()
	tracerProvider, err := observability.InitTracing(ctx, observability.LoadConfigFromEnv())
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	}

	store, err := storage.Open(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	// A key in the environment seeds the settings record on first run.
	cfg := store.Settings()
	if cfg.APIKey == "" {
		if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
			cfg.APIKey = key
			if err := store.SetSettings(cfg); err != nil {
				return nil, fmt.Errorf("failed to save settings: %w", err)
			}
		}
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set OPENROUTER_API_KEY or import settings")
	}

	llmService := llm.NewService(cfg.APIKey, debugLogger)

	completionLogger, err := logging.NewCompletionLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion logger: %w", err)
	}

	eng := engine.New(llmService, store, completionLogger, debugLogger)

	cleanup := func() {
		completionLogger.Close()
		if tracerProvider != nil {
			tracerProvider.Shutdown(context.Background())
		}
	}

	return &app{
		store:   store,
		llm:     llmService,
		engine:  eng,
		debug:   debugLogger,
		cleanup: cleanup,
	}, nil
}

func (a *app) uiModel() ui.Model {
	return ui.NewModel(ui.Deps{
		Engine: a.engine,
		Store:  a.store,
		Debug:  a.debug,
	})
}
