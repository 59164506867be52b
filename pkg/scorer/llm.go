package scorer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/feedpulse/pkg/domain"
)

// LLMConfig configures the LLM-backed scorer.
type LLMConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

const scoringSystemPrompt = `You are an assistant that rates news items for significance to the AI and tech industry.
Rate each item from 1 to 10 where:
- 1-3: routine or niche
- 4-6: notable for followers of the area
- 7-8: significant industry news
- 9-10: major development everyone in the field should know about

Respond with a single number and nothing else.`

// LLMScorer asks an OpenAI-compatible endpoint to rate significance.
// Any API or parse failure falls back to the wrapped scorer, scoring
// never blocks the pipeline on a flaky LLM.
type LLMScorer struct {
	client   *openai.Client
	config   LLMConfig
	fallback Scorer
}

// NewLLMScorer creates an LLM scorer delegating to fallback on failure.
func NewLLMScorer(cfg LLMConfig, fallback Scorer) *LLMScorer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	return &LLMScorer{
		client:   openai.NewClientWithConfig(clientConfig),
		config:   cfg,
		fallback: fallback,
	}
}

// Score rates the item with the LLM, clamped to [1, 10]. Failures are
// logged and handed to the fallback scorer.
func (s *LLMScorer) Score(ctx context.Context, item domain.Item) (float64, error) {
	score, err := s.ask(ctx, item)
	if err != nil {
		log.Printf("[WARN] llm scoring failed for %q, using fallback: %v", item.Title, err)
		return s.fallback.Score(ctx, item)
	}
	return clamp(score), nil
}

// ask sends one scoring request and parses the numeric answer.
func (s *LLMScorer) ask(ctx context.Context, item domain.Item) (float64, error) {
	content := item.Content
	if runes := []rune(content); len(runes) > 500 {
		content = string(runes[:500]) + "..."
	}

	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scoringSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Title: %s\nContent: %s", item.Title, content)},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from llm")
	}

	return parseScore(resp.Choices[0].Message.Content)
}

// parseScore extracts the numeric rating from the model output. Models
// occasionally answer "8." or "8/10" despite the prompt.
func parseScore(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if fields := strings.Fields(raw); len(fields) > 0 {
		raw = fields[0]
	}
	raw = strings.TrimRight(raw, ".")
	if idx := strings.Index(raw, "/"); idx > 0 {
		raw = raw[:idx]
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable score %q: %w", raw, err)
	}
	return score, nil
}
