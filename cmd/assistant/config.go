package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/P-AlaKara/rag-study-assistant/internal/core"
	"github.com/P-AlaKara/rag-study-assistant/internal/generation"
	"github.com/P-AlaKara/rag-study-assistant/internal/indexing"
	"github.com/P-AlaKara/rag-study-assistant/internal/session"
	logx "github.com/P-AlaKara/rag-study-assistant/pkg/logger"
	pkgredis "github.com/P-AlaKara/rag-study-assistant/pkg/redis"
)

// appConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type appConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	Gemini generation.Config

	// Engine
	Session session.Config
	Index   indexing.Config
}

// loadConfig reads .env, processes the structured env config and initialises
// logging for the configured environment.
func loadConfig() (*appConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		// .env is optional; real deployments set env vars directly
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg appConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})
	return &cfg, nil
}
