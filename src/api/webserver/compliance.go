package webserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/compliance"
	"github.com/govsecure/platform/src/reasoning"
)

type complianceHandler struct {
	agent    *compliance.Agent
	scanner  *compliance.Scanner
	reasoner *reasoning.Orchestrator
	log      *zap.Logger
}

func newComplianceHandler(agent *compliance.Agent, scanner *compliance.Scanner, reasoner *reasoning.Orchestrator, log *zap.Logger) complianceHandler {
	return complianceHandler{agent: agent, scanner: scanner, reasoner: reasoner, log: log}
}

// Scan runs a quick or full compliance scan.
func (h complianceHandler) Scan(c *gin.Context) {
	var req struct {
		ScanType string `json:"scan_type" binding:"omitempty,oneof=quick full"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	var (
		result compliance.ScanResult
		err    error
	)
	if req.ScanType == "full" {
		result, err = h.scanner.RunFullScan(c.Request.Context())
	} else {
		result, err = h.scanner.QuickScan(c.Request.Context())
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "scan aborted: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Controls lists the control catalog for a framework.
func (h complianceHandler) Controls(c *gin.Context) {
	framework := c.Param("framework")
	if framework != string(compliance.FrameworkNIST80053) {
		writeError(c, http.StatusNotFound, "unsupported framework: "+framework)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"framework": framework,
		"controls":  compliance.CommonControls,
		"count":     len(compliance.CommonControls),
	})
}

// Assess assesses one control or a list of controls.
func (h complianceHandler) Assess(c *gin.Context) {
	var req struct {
		ControlID     string   `json:"control_id" binding:"omitempty,max=16"`
		ControlIDs    []string `json:"control_ids" binding:"omitempty,max=100,dive,max=16"`
		SystemContext string   `json:"system_context" binding:"omitempty,max=8000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.SystemContext == "" {
		req.SystemContext = "General government information system"
	}

	switch {
	case req.ControlID != "":
		a, err := h.agent.AssessControl(c.Request.Context(), req.ControlID, req.SystemContext)
		if err != nil {
			writeError(c, http.StatusInternalServerError, "assessment aborted: "+err.Error())
			return
		}
		c.JSON(http.StatusOK, a)
	case len(req.ControlIDs) > 0:
		results := h.agent.BulkAssessControls(c.Request.Context(), req.ControlIDs, req.SystemContext)
		c.JSON(http.StatusOK, gin.H{
			"assessments": results,
			"requested":   len(req.ControlIDs),
			"completed":   len(results),
		})
	default:
		writeError(c, http.StatusBadRequest, "control_id or control_ids required")
	}
}

// Report builds a compliance report; ?scan_id selects a recorded scan
// (latest when omitted) and ?framework labels the report.
func (h complianceHandler) Report(c *gin.Context) {
	scanID := c.Query("scan_id")
	framework := compliance.Framework(c.Query("framework"))

	report, err := h.scanner.GenerateComplianceReport(scanID, framework)
	if err != nil {
		if errors.Is(err, compliance.ErrNoScans) || errors.Is(err, compliance.ErrScanNotFound) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "report generation failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Statistics aggregates recorded scan history.
func (h complianceHandler) Statistics(c *gin.Context) {
	stats, err := h.scanner.ScanStatistics()
	if err != nil {
		if errors.Is(err, compliance.ErrNoScans) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "statistics failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Reason runs a reasoning pipeline over free-form input.
func (h complianceHandler) Reason(c *gin.Context) {
	var req struct {
		TaskType string `json:"task_type" binding:"required,max=64"`
		Input    string `json:"input" binding:"required,min=1,max=16000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	taskType, err := reasoning.ParseTaskType(req.TaskType)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.reasoner.Run(c.Request.Context(), taskType, req.Input)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "reasoning failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_type":        result.TaskType,
		"result":           result.Result,
		"reasoning_steps":  result.ReasoningSteps,
		"confidence_score": result.ConfidenceScore,
		"model_used":       result.ModelUsed,
		"processing_ms":    result.ProcessingTime.Milliseconds(),
		"timestamp":        time.Now().UTC(),
	})
}
