package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrQuotaExceeded marks a provider rate-limit or quota exhaustion. Callers
// treat it as cycle-terminating: retrying other topics against an exhausted
// quota only burns requests.
var ErrQuotaExceeded = errors.New("llm quota exceeded")

// GenerationClient is the single seam between the content pipeline and the
// model provider.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type googleAIClient struct {
	llm *googleai.GoogleAI
}

// NewGoogleAIClient builds the production generation client. The API key is
// required; model selection falls back to a sensible default.
func NewGoogleAIClient(ctx context.Context) (GenerationClient, error) {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return nil, errors.New("API_KEY is not set")
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %w", err)
	}

	log.Info().Str("model", model).Msg("Generation client initialized")
	return &googleAIClient{llm: llm}, nil
}

func (c *googleAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithMaxTokens(4096),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		if isQuotaError(err) {
			return "", fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	return completion, nil
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit")
}
