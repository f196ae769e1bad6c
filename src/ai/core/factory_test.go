package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct{ model string }

func (s stubClient) Complete(context.Context, Request) (string, error) { return "ok", nil }
func (s stubClient) Model() string                                     { return s.model }

func TestNewClientResolvesAliases(t *testing.T) {
	RegisterProvider("stub", func(cfg FactoryConfig) (Client, error) {
		return stubClient{model: cfg.Model}, nil
	}, "stub-alias")

	for _, name := range []string{"stub", "STUB", "stub-alias"} {
		t.Run(name, func(t *testing.T) {
			c, err := NewClient(FactoryConfig{Provider: name, Model: "m1"})
			require.NoError(t, err)
			assert.Equal(t, "m1", c.Model())
		})
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(FactoryConfig{Provider: "nonexistent"})
	assert.Error(t, err)
}
