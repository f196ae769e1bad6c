package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/auth"
)

type authHandler struct {
	sessions *auth.Manager
	log      *zap.Logger
}

func newAuthHandler(sessions *auth.Manager, log *zap.Logger) authHandler {
	return authHandler{sessions: sessions, log: log}
}

// Login validates credentials and returns a bearer token.
func (h authHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=1,max=64"`
		Password string `json:"password" binding:"required,min=1,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !h.sessions.ValidateCredentials(req.Username, req.Password) {
		h.log.Warn("login rejected",
			zap.String("username", req.Username), zap.String("ip", c.ClientIP()))
		writeError(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	session, err := h.sessions.CreateSession(req.Username)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to create session")
		return
	}
	token, err := h.sessions.IssueToken(session)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.log.Info("login succeeded", zap.String("username", req.Username))
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "bearer",
		"username":   session.Username,
		"roles":      session.Roles,
		"clearance":  session.Clearance,
		"expires_at": session.ExpiresAt,
	})
}
