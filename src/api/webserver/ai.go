package webserver

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/assistant"
)

// maxUploadBytes caps document uploads at 10 MB.
const maxUploadBytes = 10 << 20

type aiHandler struct {
	assistant *assistant.Assistant
	sanitizer *bluemonday.Policy
	log       *zap.Logger
}

func newAIHandler(a *assistant.Assistant, log *zap.Logger) aiHandler {
	return aiHandler{assistant: a, sanitizer: bluemonday.StrictPolicy(), log: log}
}

// Chat answers one message, optionally switching the assistant mode
// first.
func (h aiHandler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required,min=1,max=10000"`
		Mode    string `json:"mode" binding:"omitempty,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Mode != "" {
		if err := h.assistant.SetModeName(req.Mode); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	response := h.assistant.Chat(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"response":  response,
		"mode":      h.assistant.CurrentMode(),
		"timestamp": time.Now().UTC(),
	})
}

// AnalyzeDocument analyzes raw document text from the request body.
func (h aiHandler) AnalyzeDocument(c *gin.Context) {
	var req struct {
		Content      string `json:"content" binding:"required"`
		AnalysisType string `json:"analysis_type" binding:"omitempty,max=32"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.analyze(c, req.Content, req.AnalysisType)
}

// AnalyzeDocumentUpload analyzes an uploaded file. The content is
// sanitized before it reaches the assistant.
func (h aiHandler) AnalyzeDocumentUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "file upload required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "file exceeds 10MB limit")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	content := h.sanitizer.Sanitize(string(raw))
	if !utf8.ValidString(content) {
		writeError(c, http.StatusBadRequest, "upload must be valid UTF-8 text")
		return
	}

	h.log.Info("document upload received",
		zap.String("filename", header.Filename), zap.Int64("size", header.Size))
	h.analyze(c, content, c.PostForm("analysis_type"))
}

func (h aiHandler) analyze(c *gin.Context, content, analysisType string) {
	if analysisType == "" {
		analysisType = "general"
	}
	result, err := h.assistant.AnalyzeDocument(c.Request.Context(), content, analysisType)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyDocument) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "document analysis failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Translate translates text to a target language.
func (h aiHandler) Translate(c *gin.Context) {
	var req struct {
		Text           string `json:"text" binding:"required,min=1"`
		TargetLanguage string `json:"target_language" binding:"required,min=2,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(c, http.StatusBadRequest, "text cannot be blank")
		return
	}

	result := h.assistant.TranslateText(c.Request.Context(), req.Text, req.TargetLanguage)
	c.JSON(http.StatusOK, result)
}
