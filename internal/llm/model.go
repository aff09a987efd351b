package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raphaelgruber/rebuttal-go/internal/config"
	"github.com/raphaelgruber/rebuttal-go/internal/metrics"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model wraps a langchaingo LLM as a debate opponent.
type Model struct {
	llm       llms.Model
	modelName string
	collector *metrics.Collector
}

// NewModel creates an LLM-backed generator based on configuration.
func NewModel(cfg config.Config, collector *metrics.Collector) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:       model,
		modelName: cfg.LLMModel,
		collector: collector,
	}, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}

// Generate produces the opponent's next argument for the given request.
func (m *Model) Generate(ctx context.Context, req Request) (string, error) {
	prompt := buildPrompt(req)

	start := time.Now()
	resp, err := m.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("generate opponent turn: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	choice := resp.Choices[0]
	if m.collector != nil {
		in, out := tokenUsage(choice.GenerationInfo)
		m.collector.RecordLLMUsage(time.Since(start), in, out)
	}

	content := strings.TrimSpace(choice.Content)
	if content == "" {
		return "", fmt.Errorf("empty response")
	}
	return content, nil
}

// buildPrompt renders the generation prompt. Opening requests ask for an
// opening statement; later requests embed the transcript and the user's
// latest argument.
func buildPrompt(req Request) string {
	if req.Opening {
		return openingPrompt(req.Config)
	}
	return counterPrompt(req.Config, req.History, req.UserText)
}

func openingPrompt(cfg models.DebateConfig) string {
	direction := "against"
	if cfg.AISide == models.SideSupport {
		direction = "in favor of"
	}
	return fmt.Sprintf("Make a strong opening argument %s the topic: %q", direction, cfg.Topic)
}

func counterPrompt(cfg models.DebateConfig, history []models.Turn, userText string) string {
	var ctx strings.Builder
	for _, turn := range history {
		speaker := "AI"
		if turn.Role == models.RoleUser {
			speaker = "User"
		}
		fmt.Fprintf(&ctx, "%s: %s\n", speaker, turn.Content)
	}

	stance := "opposes"
	if cfg.AISide == models.SideSupport {
		stance = "supports"
	}

	return fmt.Sprintf(`You are participating in a debate.
Topic: %s
Your position: %s the topic
Debate mode: %s
Response length: %s

Conversation so far:
%s
User just said: %s

Provide a %s counter-argument that %s the topic. Use bold text (**text**) to emphasize key points.`,
		cfg.Topic,
		cfg.AISide,
		cfg.Mode,
		cfg.ResponseLength,
		ctx.String(),
		userText,
		strings.ToLower(string(cfg.ResponseLength)),
		stance,
	)
}

// tokenUsage pulls prompt/completion token counts out of a provider's
// generation info, tolerating the int/int64/float64 variants the providers
// report.
func tokenUsage(info map[string]any) (in, out int64) {
	return asInt64(info["PromptTokens"]), asInt64(info["CompletionTokens"])
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
