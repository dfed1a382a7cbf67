package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"astropath/internal/assistant"
	"astropath/internal/config"
	"astropath/internal/tui"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the study assistant",
	Long: `Start an interactive chat session with the study assistant. The
assistant answers questions about clustering, the bundled demos and the
datasets you are working with.

The provider, model and system prompt come from the config file. Set
provider to "mock" to try the interface without an API key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		provider, err := buildProvider(cfg)
		if err != nil {
			return err
		}

		session := assistant.NewSession(cfg.Assistant.SystemPrompt)
		return tui.RunChat(provider, session)
	},
}

// buildProvider constructs the chat provider named by the config.
func buildProvider(cfg *config.Config) (assistant.Provider, error) {
	switch cfg.Assistant.Provider {
	case "anthropic":
		return assistant.NewAnthropicProvider(cfg.Assistant.Model, cfg.Assistant.APIKey)
	case "mock":
		mock := assistant.NewMockProvider("mock")
		mock.QueueResponse(assistant.MockResponse{
			Content: "I'm the offline stand-in assistant. Set provider to \"anthropic\" in the config for real answers.",
		})
		return mock, nil
	default:
		return nil, fmt.Errorf("unknown assistant provider: %q", cfg.Assistant.Provider)
	}
}
