package generation

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	errx "github.com/P-AlaKara/rag-study-assistant/internal/core/error"
	logx "github.com/P-AlaKara/rag-study-assistant/pkg/logger"
)

// Config holds the Gemini generation settings, sourced from environment
// variables.
type Config struct {
	APIKey      string  `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL     string  `envconfig:"GEMINI_BASE_URL"`
	Model       string  `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"GEMINI_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.0"`
}

// GeminiGenerator implements Generator on top of a Gemini chat model.
type GeminiGenerator struct {
	model     *gemini.ChatModel
	modelName string
}

// NewGeminiGenerator creates the Gemini client and chat model with the given
// configuration.
func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini chat model")
		return nil, fmt.Errorf("error creating Gemini chat model: %w", err)
	}

	return &GeminiGenerator{model: chatModel, modelName: cfg.Model}, nil
}

// Generate renders the template with vars and performs one synchronous model
// round-trip. Token usage cost is logged per call.
func (g *GeminiGenerator) Generate(ctx context.Context, tpl Template, vars map[string]any) (string, error) {
	msgs, err := Render(ctx, tpl, vars)
	if err != nil {
		return "", err
	}

	out, err := g.model.Generate(ctx, msgs)
	if err != nil {
		logx.Error().Err(err).Str("template", string(tpl)).Msg("Gemini generation failed")
		return "", fmt.Errorf("generate %s: %w: %w", tpl, errx.ErrGenerationUnavailable, err)
	}
	if out == nil {
		return "", fmt.Errorf("generate %s: %w: empty response", tpl, errx.ErrGenerationUnavailable)
	}

	logUsageCost(g.modelName, string(tpl), out)
	return out.Content, nil
}

var _ Generator = (*GeminiGenerator)(nil)
