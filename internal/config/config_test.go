package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1500ms", 1500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"0s", 0},
		{"not-a-duration", 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := parseDuration(tt.input); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.SurrealDBURL != "ws://localhost:8000/rpc" {
		t.Errorf("SurrealDBURL = %q", cfg.SurrealDBURL)
	}
	if cfg.Profile != "local" {
		t.Errorf("Profile = %q, want local", cfg.Profile)
	}
	if cfg.LLMProvider != ProviderSimulated {
		t.Errorf("LLMProvider = %q, want simulated", cfg.LLMProvider)
	}
	if cfg.SimulatedLatency != 1500*time.Millisecond {
		t.Errorf("SimulatedLatency = %v", cfg.SimulatedLatency)
	}
	if cfg.ServerPort != "8486" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REBUTTAL_PROFILE", "alice")
	t.Setenv("REBUTTAL_LLM_PROVIDER", "ollama")

	cfg := Load()
	if cfg.Profile != "alice" {
		t.Errorf("Profile = %q, want alice", cfg.Profile)
	}
	if cfg.LLMProvider != ProviderOllama {
		t.Errorf("LLMProvider = %q, want ollama", cfg.LLMProvider)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rebuttal.yaml")
	content := `
profile: bob
llm_provider: anthropic
simulated_latency: 10ms
log_level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Profile != "bob" {
		t.Errorf("Profile = %q, want bob", cfg.Profile)
	}
	if cfg.LLMProvider != ProviderAnthropic {
		t.Errorf("LLMProvider = %q, want anthropic", cfg.LLMProvider)
	}
	if cfg.SimulatedLatency != 10*time.Millisecond {
		t.Errorf("SimulatedLatency = %v", cfg.SimulatedLatency)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.SurrealDBNamespace != "debate" {
		t.Errorf("SurrealDBNamespace = %q, want debate", cfg.SurrealDBNamespace)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("debate started", "topic", "UBI")

	if !strings.Contains(stderr.String(), "debate started") {
		t.Error("stderr output missing message")
	}

	var entry map[string]any
	if err := json.Unmarshal(file.Bytes(), &entry); err != nil {
		t.Fatalf("file output is not JSON: %v", err)
	}
	if entry["msg"] != "debate started" || entry["topic"] != "UBI" {
		t.Errorf("unexpected JSON entry: %v", entry)
	}
}
