package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/generation"
	"github.com/phrazzld/tasks-api/internal/suggest"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by Generator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements the generation.Generator interface using
// Google's Gemini API.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	models contentGenerator

	// sleep waits between retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator with a Gemini API client built from cfg.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, client.Models), nil
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		config: cfg,
		models: models,
		sleep:  sleepContext,
	}
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// GenerateTaskIdeas implements generation.Generator.
func (g *Generator) GenerateTaskIdeas(ctx context.Context, prompt string) ([]string, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: empty prompt", generation.ErrGenerationFailed)
	}
	return g.callWithRetry(ctx, prompt)
}

func (g *Generator) contentConfig() *genai.GenerateContentConfig {
	temperature := g.config.Temperature
	topP := g.config.TopP
	return &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		MaxOutputTokens: int32(g.config.MaxOutputTokens),
		// One candidate per suggestion the caller can keep.
		CandidateCount: int32(suggest.MaxGenerated),
	}
}

// callWithRetry calls the Gemini API with exponential backoff retry logic.
//
// Transient errors are retried up to config.MaxRetries times with jitter.
// Permanent errors (safety blocks, empty responses) are returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) ([]string, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := g.models.GenerateContent(ctx, g.config.ModelName, genai.Text(prompt), g.contentConfig())
		if err == nil {
			texts, perr := extractTexts(resp)
			if perr != nil {
				g.logger.WarnContext(ctx, "permanent Gemini error, not retrying", "error", perr)
				return nil, perr
			}
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum,
				"candidates", len(texts))
			return texts, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * 2^attempt * [0.5, 1.0)
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoffSeconds * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		if err := g.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

// extractTexts returns the concatenated text parts of each candidate.
func extractTexts(resp *genai.GenerateContentResponse) ([]string, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	texts := make([]string, 0, len(resp.Candidates))
	blocked := 0
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		if c.FinishReason == genai.FinishReasonSafety {
			blocked++
			continue
		}
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range c.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			texts = append(texts, b.String())
		}
	}

	if len(texts) == 0 {
		if blocked > 0 {
			return nil, generation.ErrContentBlocked
		}
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return texts, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
