// Package llm generates the opponent's side of a debate. The real backends
// sit behind langchaingo; a simulated backend serves offline use and tests.
package llm

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/rebuttal-go/internal/config"
	"github.com/raphaelgruber/rebuttal-go/internal/metrics"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// Request carries everything a generator needs for one opponent turn.
type Request struct {
	Config   models.DebateConfig
	History  []models.Turn
	UserText string
	Opening  bool
}

// Generator produces the opponent's next argument.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// NewGenerator creates the generator selected by configuration.
func NewGenerator(cfg config.Config, collector *metrics.Collector) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderSimulated:
		return NewSimulated(cfg.SimulatedLatency), nil
	case config.ProviderOllama, config.ProviderOpenAI, config.ProviderAnthropic:
		return NewModel(cfg, collector)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
