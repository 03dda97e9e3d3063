package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/closetpilot/wardrobe-api/internal/config"
	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/generation"
)

// promptTemplateText asks the model for two or three sentences of plain
// prose. The response is used verbatim, so no JSON schema is requested.
const promptTemplateText = `You are a personal stylist. Describe the following outfit in two or three
warm, concrete sentences. Mention how the pieces work together for the
occasion and the weather. Do not use markdown or bullet points.

Occasion: {{.Occasion}}
Season: {{.Season}}
Weather: {{.Weather}}
Pieces:
{{range .Items}}- {{.}}
{{end}}`

// promptData represents the data passed to the prompt template
type promptData struct {
	Occasion string
	Season   string
	Weather  string
	Items    []string
}

// NarrativeGenerator implements generation.NarrativeGenerator using
// Google's Gemini API to describe a recommended outfit.
type NarrativeGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewNarrativeGenerator creates a new NarrativeGenerator with the provided
// dependencies. It returns an error if the configuration is incomplete or
// the Gemini client cannot be created.
func NewNarrativeGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*NarrativeGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("narrative").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &NarrativeGenerator{
		logger:         logger.With(slog.String("component", "gemini_narrative")),
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// GenerateNarrative implements generation.NarrativeGenerator.
func (g *NarrativeGenerator) GenerateNarrative(
	ctx context.Context,
	reqCtx domain.RecommendationContext,
	items []*domain.ClothingItem,
) (string, error) {
	prompt, err := g.createPrompt(reqCtx, items)
	if err != nil {
		return "", err
	}

	g.logger.DebugContext(ctx, "Calling Gemini API",
		slog.String("model", g.model),
		slog.Int("item_count", len(items)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: narrative blocked by safety filters", generation.ErrContentBlocked)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty narrative in response", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "Narrative generated",
		slog.Int("narrative_length", len(text)))
	return text, nil
}

// createPrompt renders the prompt template for the request. Items are
// described by their attributes so the model never sees internal IDs.
func (g *NarrativeGenerator) createPrompt(
	reqCtx domain.RecommendationContext,
	items []*domain.ClothingItem,
) (string, error) {
	if len(items) == 0 {
		return "", ErrNoItems
	}

	descriptions := make([]string, 0, len(items))
	for _, item := range items {
		descriptions = append(descriptions, describeItem(item))
	}

	data := promptData{
		Occasion: reqCtx.Occasion,
		Season:   reqCtx.Season,
		Weather:  reqCtx.Weather,
		Items:    descriptions,
	}

	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

func describeItem(item *domain.ClothingItem) string {
	parts := []string{}
	if len(item.Attributes.Colors) > 0 {
		parts = append(parts, strings.Join(item.Attributes.Colors, " and "))
	}
	if item.Attributes.Material != "" {
		parts = append(parts, item.Attributes.Material)
	}
	parts = append(parts, item.Attributes.Category)
	return strings.Join(parts, " ")
}
