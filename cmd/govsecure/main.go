// Command govsecure is the platform CLI: interactive console, one-shot
// chat, compliance scans and the web server, all over the same domain
// packages the REST API uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/ai/core"
	"github.com/govsecure/platform/src/ai/providers"
	"github.com/govsecure/platform/src/config"
	"github.com/govsecure/platform/src/logging"
)

func main() {
	root := &cobra.Command{
		Use:   "govsecure",
		Short: "AI-powered government operations platform",
		Long: `GovSecure provides an AI assistant for citizen services, compliance
scanning against NIST 800-53, document analysis and translation, and
emergency response coordination. Without a provider API key every
feature runs against the built-in offline responder.`,
		SilenceUsage: true,
	}

	root.AddCommand(newStartCmd(), newChatCmd(), newScanCmd(), newWebCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config, the logger and the completion client shared
// by every subcommand.
func bootstrap() (config.Config, *zap.Logger, core.Client) {
	cfg := config.Load()
	log := logging.New(cfg.Debug)
	client := providers.FromConfig(core.FactoryConfig{
		Provider:    cfg.AI.Provider,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		OpenAIKey:   cfg.AI.OpenAIKey,
		ClaudeKey:   cfg.AI.ClaudeKey,
		BaseURL:     cfg.AI.SystemURL,
	})
	return cfg, log, client
}
