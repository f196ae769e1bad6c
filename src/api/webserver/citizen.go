package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/assistant"
)

type citizenHandler struct {
	assistant *assistant.Assistant
	log       *zap.Logger
}

func newCitizenHandler(a *assistant.Assistant, log *zap.Logger) citizenHandler {
	return citizenHandler{assistant: a, log: log}
}

// SubmitRequest structures a citizen service request and assigns a
// tracking id.
func (h citizenHandler) SubmitRequest(c *gin.Context) {
	var req struct {
		Query       string `json:"query" binding:"required,min=1,max=8000"`
		ContactInfo string `json:"contact_info" binding:"omitempty,max=256"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	result := h.assistant.ProcessCitizenQuery(c.Request.Context(), req.Query)
	trackingID := "REQ-" + uuid.NewString()[:8]
	h.log.Info("citizen request submitted",
		zap.String("tracking_id", trackingID), zap.String("category", result.Category))

	c.JSON(http.StatusOK, gin.H{
		"tracking_id": trackingID,
		"request":     result,
		"submitted":   time.Now().UTC(),
	})
}

// Services lists the citizen service catalog.
func (h citizenHandler) Services(c *gin.Context) {
	services := assistant.CitizenServices()
	c.JSON(http.StatusOK, gin.H{
		"services":   services,
		"categories": len(services),
	})
}

// ReportIncident records an emergency incident and returns coordination
// guidance.
func (h citizenHandler) ReportIncident(c *gin.Context) {
	var req struct {
		IncidentType string `json:"incident_type" binding:"required,min=1,max=128"`
		Description  string `json:"description" binding:"required,min=1,max=8000"`
		Location     string `json:"location" binding:"omitempty,max=256"`
		Severity     string `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Severity == "" {
		req.Severity = "medium"
	}

	if err := h.assistant.SetMode(assistant.ModeEmergencyResponse); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to activate emergency mode")
		return
	}
	guidance := h.assistant.Chat(c.Request.Context(),
		"Incident type: "+req.IncidentType+"\nSeverity: "+req.Severity+
			"\nLocation: "+req.Location+"\nDescription: "+req.Description)

	incidentID := "INC-" + uuid.NewString()[:8]
	h.log.Warn("emergency incident reported",
		zap.String("incident_id", incidentID),
		zap.String("type", req.IncidentType),
		zap.String("severity", req.Severity))

	c.JSON(http.StatusOK, gin.H{
		"incident_id": incidentID,
		"severity":    req.Severity,
		"guidance":    guidance,
		"reported":    time.Now().UTC(),
	})
}
