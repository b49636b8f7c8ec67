package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logx "github.com/nexusflow-ai/server/pkg/logger"
)

// RequestLogger logs HTTP requests and their outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		ev := logx.Info()
		if c.Writer.Status() >= http.StatusBadRequest {
			ev = logx.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Msg("request completed")

		for _, e := range c.Errors {
			logx.Error().
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Err(e.Err).
				Msg("request error")
		}
	}
}

// CORS adds permissive CORS headers for cross-origin frontends.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
