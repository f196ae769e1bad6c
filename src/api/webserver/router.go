package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/govsecure/platform/src/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://app.govsecure.example.gov"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(errorEnvelope())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        cfg.AppName,
			"version":     cfg.Version,
			"description": "AI-powered government operations platform",
			"docs":        "/health",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		status := deps.Assistant.SystemStatus()
		c.JSON(http.StatusOK, gin.H{
			"status":             "healthy",
			"timestamp":          time.Now().UTC(),
			"version":            cfg.Version,
			"environment":        cfg.Environment,
			"assistant_ready":    status.AssistantReady,
			"provider_available": status.ProviderAvailable,
			"model":              status.Model,
		})
	})

	authH := newAuthHandler(deps.Sessions, deps.Log)
	aiH := newAIHandler(deps.Assistant, deps.Log)
	compH := newComplianceHandler(deps.Agent, deps.Scanner, deps.Reasoner, deps.Log)
	citH := newCitizenHandler(deps.Assistant, deps.Log)
	adminH := newAdminHandler(cfg, deps)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authH.Login)

		secured := v1.Group("")
		secured.Use(JWTMiddleware(cfg, deps.Sessions))
		{
			secured.POST("/ai/chat", aiH.Chat)
			secured.POST("/ai/analyze-document", aiH.AnalyzeDocument)
			secured.POST("/ai/analyze-document-upload", aiH.AnalyzeDocumentUpload)
			secured.POST("/ai/translate", aiH.Translate)

			secured.POST("/compliance/scan", compH.Scan)
			secured.GET("/compliance/controls/:framework", compH.Controls)
			secured.POST("/compliance/assess", compH.Assess)
			secured.GET("/compliance/report", compH.Report)
			secured.GET("/compliance/statistics", compH.Statistics)
			secured.POST("/compliance/reason", compH.Reason)

			secured.POST("/citizen/request", citH.SubmitRequest)
			secured.GET("/citizen/services", citH.Services)

			secured.POST("/emergency/incident", citH.ReportIncident)
		}

		admin := v1.Group("/admin")
		admin.Use(JWTMiddleware(cfg, deps.Sessions), RequireRole("admin"))
		{
			admin.GET("/stats", adminH.Stats)
			admin.POST("/maintenance", adminH.Maintenance)
		}
	}
}
