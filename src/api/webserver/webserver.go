// Package webserver exposes the platform over REST. All domain logic
// lives in the assistant, compliance and reasoning packages; handlers
// only validate input, call through and shape responses.
package webserver

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/assistant"
	"github.com/govsecure/platform/src/auth"
	"github.com/govsecure/platform/src/compliance"
	"github.com/govsecure/platform/src/config"
	"github.com/govsecure/platform/src/reasoning"
)

// Deps are the domain services the web server fronts.
type Deps struct {
	Assistant *assistant.Assistant
	Agent     *compliance.Agent
	Scanner   *compliance.Scanner
	Reasoner  *reasoning.Orchestrator
	Sessions  *auth.Manager
	Log       *zap.Logger
}

// New builds the HTTP engine with all routes attached.
func New(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, deps)
	return g
}
