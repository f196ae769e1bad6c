package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govsecure/platform/src/assistant"
	"github.com/govsecure/platform/src/config"
)

type adminHandler struct {
	cfg  config.Config
	deps Deps
}

func newAdminHandler(cfg config.Config, deps Deps) adminHandler {
	return adminHandler{cfg: cfg, deps: deps}
}

// Stats reports platform operational statistics.
func (h adminHandler) Stats(c *gin.Context) {
	status := h.deps.Assistant.SystemStatus()
	scans := h.deps.Scanner.History()
	c.JSON(http.StatusOK, gin.H{
		"app_name":            h.cfg.AppName,
		"version":             h.cfg.Version,
		"environment":         h.cfg.Environment,
		"assistant_mode":      status.CurrentMode,
		"provider_available":  status.ProviderAvailable,
		"model":               status.Model,
		"conversation_length": status.ConversationLength,
		"total_scans":         len(scans),
		"timestamp":           time.Now().UTC(),
	})
}

// Maintenance clears in-memory assistant state.
func (h adminHandler) Maintenance(c *gin.Context) {
	var req struct {
		Action string `json:"action" binding:"required,oneof=clear_history reset_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Action {
	case "clear_history":
		h.deps.Assistant.ClearHistory()
	case "reset_mode":
		if err := h.deps.Assistant.SetMode(assistant.ModeGeneral); err != nil {
			writeError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"action": req.Action, "status": "completed"})
}
