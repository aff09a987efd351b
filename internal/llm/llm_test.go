package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/raphaelgruber/rebuttal-go/internal/config"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

func testConfig() models.DebateConfig {
	return models.DebateConfig{
		Topic:          "Universal basic income should be adopted",
		Category:       "Economics",
		Mode:           models.ModeCompetitive,
		ResponseLength: models.LengthDetailed,
		UserSide:       models.SideSupport,
		AISide:         models.SideOppose,
	}
}

func TestOpeningPrompt(t *testing.T) {
	cfg := testConfig()
	got := buildPrompt(Request{Config: cfg, Opening: true})
	want := `Make a strong opening argument against the topic: "Universal basic income should be adopted"`
	if got != want {
		t.Errorf("opening prompt = %q, want %q", got, want)
	}

	cfg.AISide = models.SideSupport
	cfg.UserSide = models.SideOppose
	got = buildPrompt(Request{Config: cfg, Opening: true})
	if !strings.Contains(got, "in favor of the topic") {
		t.Errorf("supporting opening prompt = %q", got)
	}
}

func TestCounterPrompt(t *testing.T) {
	history := []models.Turn{
		{Role: models.RoleAI, Content: "Opening statement."},
		{Role: models.RoleUser, Content: "UBI reduces poverty."},
	}
	got := buildPrompt(Request{
		Config:   testConfig(),
		History:  history,
		UserText: "UBI reduces poverty.",
	})

	for _, want := range []string{
		"Topic: Universal basic income should be adopted",
		"Your position: Oppose the topic",
		"Debate mode: Competitive",
		"Response length: Detailed",
		"AI: Opening statement.",
		"User: UBI reduces poverty.",
		"User just said: UBI reduces poverty.",
		"Provide a detailed counter-argument that opposes the topic.",
		"Use bold text (**text**) to emphasize key points.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("counter prompt missing %q:\n%s", want, got)
		}
	}
}

func TestSimulatedOpening(t *testing.T) {
	gen := NewSimulated(0)
	got, err := gen.Generate(context.Background(), Request{Config: testConfig(), Opening: true})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if !strings.Contains(got, "opposes this proposition") {
		t.Errorf("opening for opposing side = %q", got)
	}
	if !strings.Contains(got, `"Universal basic income should be adopted"`) {
		t.Errorf("opening should quote the topic: %q", got)
	}
	if !strings.Contains(got, "**compelling reasons**") {
		t.Errorf("opening should carry bold emphasis: %q", got)
	}
}

func TestSimulatedCounter(t *testing.T) {
	gen := NewSimulated(0)
	got, err := gen.Generate(context.Background(), Request{Config: testConfig(), UserText: "My point."})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if !strings.Contains(got, "**respectfully disagree**") {
		t.Errorf("counter template = %q", got)
	}
	if !strings.Contains(got, "opposing") {
		t.Errorf("counter should reflect the opposing stance: %q", got)
	}
}

func TestSimulatedHonorsContext(t *testing.T) {
	gen := NewSimulated(10 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gen.Generate(ctx, Request{Config: testConfig(), Opening: true})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Generate() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Generate() did not return promptly on cancellation")
	}
}

func TestNewGeneratorSelection(t *testing.T) {
	cfg := config.Config{LLMProvider: config.ProviderSimulated}
	gen, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator(simulated) failed: %v", err)
	}
	if _, ok := gen.(*Simulated); !ok {
		t.Errorf("generator type = %T, want *Simulated", gen)
	}

	if _, err := NewGenerator(config.Config{LLMProvider: "bogus"}, nil); err == nil {
		t.Error("unknown provider should fail")
	}

	// Key-less cloud providers fail fast.
	if _, err := NewGenerator(config.Config{LLMProvider: config.ProviderOpenAI}, nil); err == nil {
		t.Error("openai without key should fail")
	}
	if _, err := NewGenerator(config.Config{LLMProvider: config.ProviderAnthropic}, nil); err == nil {
		t.Error("anthropic without key should fail")
	}
}
