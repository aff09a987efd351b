// Package config loads runtime configuration from the environment, with an
// optional YAML overlay file, and wires up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider selects the opponent backend.
type Provider string

const (
	ProviderSimulated Provider = "simulated"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection (profile store)
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Profile identity: explicit, not ambient. Every persisted debate is
	// attributed to this profile name.
	Profile string

	// Opponent generator
	LLMProvider      Provider
	LLMModel         string
	OllamaHost       string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	SimulatedLatency time.Duration

	// Server
	ServerPort string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "debate"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "practice"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		Profile: getEnv("REBUTTAL_PROFILE", "local"),

		LLMProvider:      Provider(getEnv("REBUTTAL_LLM_PROVIDER", string(ProviderSimulated))),
		LLMModel:         getEnv("REBUTTAL_LLM_MODEL", "llama3.2"),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		SimulatedLatency: parseDuration(getEnv("REBUTTAL_SIMULATED_LATENCY", "1500ms")),

		ServerPort: getEnv("REBUTTAL_SERVER_PORT", "8486"),

		LogFile:  getEnv("REBUTTAL_LOG_FILE", "/tmp/rebuttal.log"),
		LogLevel: parseLogLevel(getEnv("REBUTTAL_LOG_LEVEL", "INFO")),
	}
}

// fileConfig mirrors Config for the YAML overlay. Zero values leave the
// corresponding field untouched.
type fileConfig struct {
	SurrealDBURL       string `yaml:"surrealdb_url"`
	SurrealDBNamespace string `yaml:"surrealdb_namespace"`
	SurrealDBDatabase  string `yaml:"surrealdb_database"`
	SurrealDBUser      string `yaml:"surrealdb_user"`
	SurrealDBPass      string `yaml:"surrealdb_pass"`

	Profile string `yaml:"profile"`

	LLMProvider      string `yaml:"llm_provider"`
	LLMModel         string `yaml:"llm_model"`
	OllamaHost       string `yaml:"ollama_host"`
	SimulatedLatency string `yaml:"simulated_latency"`

	ServerPort string `yaml:"server_port"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// LoadFile loads environment configuration and overlays values from a YAML
// file. Fields absent from the file keep their environment/default values.
func LoadFile(path string) (Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	overlay(&cfg.SurrealDBURL, fc.SurrealDBURL)
	overlay(&cfg.SurrealDBNamespace, fc.SurrealDBNamespace)
	overlay(&cfg.SurrealDBDatabase, fc.SurrealDBDatabase)
	overlay(&cfg.SurrealDBUser, fc.SurrealDBUser)
	overlay(&cfg.SurrealDBPass, fc.SurrealDBPass)
	overlay(&cfg.Profile, fc.Profile)
	overlay(&cfg.LLMModel, fc.LLMModel)
	overlay(&cfg.OllamaHost, fc.OllamaHost)
	overlay(&cfg.ServerPort, fc.ServerPort)
	overlay(&cfg.LogFile, fc.LogFile)

	if fc.LLMProvider != "" {
		cfg.LLMProvider = Provider(fc.LLMProvider)
	}
	if fc.SimulatedLatency != "" {
		cfg.SimulatedLatency = parseDuration(fc.SimulatedLatency)
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = parseLogLevel(fc.LogLevel)
	}

	return cfg, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 1500 * time.Millisecond
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
