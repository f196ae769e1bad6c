// Package providers registers every live completion provider with the
// core factory. Import it for side effects from any entrypoint that
// constructs clients by name.
package providers

import (
	"github.com/govsecure/platform/src/ai/claude"
	"github.com/govsecure/platform/src/ai/core"
	"github.com/govsecure/platform/src/ai/openai"
)

func init() {
	core.RegisterProvider("openai", openai.New, "gpt", "gpt-4o")
	core.RegisterProvider("claude", claude.New, "anthropic")
}

// FromConfig builds the completion client for the configured provider,
// or nil when no API key is present (callers then run offline).
func FromConfig(cfg core.FactoryConfig) core.Client {
	switch {
	case cfg.Provider == "claude" && cfg.ClaudeKey == "":
		return nil
	case cfg.Provider != "claude" && cfg.OpenAIKey == "":
		return nil
	}
	c, err := core.NewClient(cfg)
	if err != nil {
		return nil
	}
	return c
}
