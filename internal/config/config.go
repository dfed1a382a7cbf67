// Package config loads and validates the application configuration.
// Configuration lives in a JSON file; secrets such as the assistant API
// key may reference environment variables with ${VAR} placeholders.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level application configuration.
type Config struct {
	Assistant AssistantConfig `json:"assistant"`
	Lab       LabConfig       `json:"lab"`
}

// AssistantConfig configures the chat assistant panel.
type AssistantConfig struct {
	// Provider selects the chat backend: "anthropic" or "mock".
	Provider string `json:"provider"`

	// Model is the hosted model identifier.
	Model string `json:"model"`

	// APIKey authenticates against the hosted service. Supports
	// ${ENV_VAR} expansion; empty falls back to ANTHROPIC_API_KEY.
	APIKey string `json:"api_key,omitempty"`

	// MaxTokens bounds each reply.
	MaxTokens int `json:"max_tokens"`

	// SystemPrompt frames the assistant's tutoring role.
	SystemPrompt string `json:"system_prompt"`
}

// LabConfig configures Data Lab clustering defaults.
type LabConfig struct {
	// DefaultK is the cluster count used when the user does not pick one.
	DefaultK int `json:"default_k"`

	// MaxIterations bounds refinement passes per run.
	MaxIterations int `json:"max_iterations"`

	// Seed, when non-zero, makes every run reproducible.
	Seed int64 `json:"seed,omitempty"`

	// ReseedEmptyClusters re-seeds degenerate clusters from a random
	// point instead of collapsing them to the origin.
	ReseedEmptyClusters bool `json:"reseed_empty_clusters,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Provider:  "anthropic",
			Model:     "claude-3-5-haiku-latest",
			APIKey:    "${ANTHROPIC_API_KEY}",
			MaxTokens: 1024,
			SystemPrompt: "You are a tutor for an astrobiology machine-learning course. " +
				"Explain concepts clearly and concisely, using examples from planetary science where helpful.",
		},
		Lab: LabConfig{
			DefaultK:      3,
			MaxIterations: 50,
		},
	}
}

// Load reads a config file, creating it with defaults if missing, and
// validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
		fmt.Printf("Created default configuration at %s\n", path)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expand ${ENV_VAR} references in secret fields.
	cfg.Assistant.APIKey = os.ExpandEnv(cfg.Assistant.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Assistant.Validate(); err != nil {
		return fmt.Errorf("assistant: %w", err)
	}
	if err := c.Lab.Validate(); err != nil {
		return fmt.Errorf("lab: %w", err)
	}
	return nil
}

// Validate checks the assistant section.
func (a AssistantConfig) Validate() error {
	switch a.Provider {
	case "anthropic", "mock":
	default:
		return fmt.Errorf("unknown provider %q (must be anthropic or mock)", a.Provider)
	}
	if a.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if a.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive, got %d", a.MaxTokens)
	}
	return nil
}

// Validate checks the lab section.
func (l LabConfig) Validate() error {
	if l.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive, got %d", l.DefaultK)
	}
	if l.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be positive, got %d", l.MaxIterations)
	}
	return nil
}
