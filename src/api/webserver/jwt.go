package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govsecure/platform/src/auth"
	"github.com/govsecure/platform/src/config"
)

// claimsKey is the gin context key the middleware stores claims under.
const claimsKey = "claims"

// JWTMiddleware validates the bearer token and stores its claims. In
// development mode, requests without a token pass through with a
// default identity.
func JWTMiddleware(cfg config.Config, sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			if cfg.IsDevelopment() {
				c.Set(claimsKey, &auth.Claims{
					Username:  "dev",
					Roles:     []string{"admin", "user"},
					Clearance: "secret",
				})
				c.Next()
				return
			}
			abortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := sessions.ParseToken(h[7:])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose claims lack the role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := requestClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		for _, r := range claims.Roles {
			if r == role {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, "insufficient role")
	}
}

func requestClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// errorEnvelope shapes errors recorded on the gin context into the
// platform error body.
func errorEnvelope() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		writeError(c, c.Writer.Status(), c.Errors.Last().Error())
	}
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.Abort()
	writeError(c, status, msg)
}

func writeError(c *gin.Context, status int, msg string) {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": gin.H{
		"status_code": status,
		"message":     msg,
		"timestamp":   time.Now().UTC(),
		"path":        c.Request.URL.Path,
	}})
}
