package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/robotika/internal/logging"
	"github.com/dmitrijs2005/robotika/internal/server/auth"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// accessLog records one line per request. Bodies, headers and cookies are
// never logged.
func accessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		l.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// recovery turns a panic into a generic 500.
func recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		l.Error(c.Request.Context(), "panic in handler", "path", c.FullPath(), "panic", rec)
		abortWithError(c, http.StatusInternalServerError, msgInternal)
	})
}

// requireRole lets the request through only when its session cookie carries
// a valid token for exactly role. Every failure is the same 401.
func requireRole(tokens auth.TokenVerifier, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.Authenticate(c.Request, tokens)
		if !ok || !auth.Authorize(identity, role) {
			abortWithError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}
