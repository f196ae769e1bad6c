package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/govsecure/platform/src/ai/core"
	"github.com/govsecure/platform/src/ai/providers"
	"github.com/govsecure/platform/src/api/webserver"
	"github.com/govsecure/platform/src/assistant"
	"github.com/govsecure/platform/src/auth"
	"github.com/govsecure/platform/src/compliance"
	"github.com/govsecure/platform/src/config"
	"github.com/govsecure/platform/src/logging"
	"github.com/govsecure/platform/src/reasoning"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Debug)
	defer log.Sync()

	client := providers.FromConfig(core.FactoryConfig{
		Provider:    cfg.AI.Provider,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		OpenAIKey:   cfg.AI.OpenAIKey,
		ClaudeKey:   cfg.AI.ClaudeKey,
		BaseURL:     cfg.AI.SystemURL,
	})

	deps := webserver.Deps{
		Assistant: assistant.New(cfg, client, log),
		Agent:     compliance.NewAgent(cfg, client, log),
		Scanner:   compliance.NewScanner(cfg, log),
		Reasoner:  reasoning.New(cfg, client, log),
		Sessions:  auth.NewManager(cfg, log),
		Log:       log,
	}
	router := webserver.New(cfg, deps)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("api server listening",
			zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
