package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/auth"
	"github.com/erazemk/lostfound/internal/model"
)

const claimsKey = "claims"

// authMiddleware validates the bearer JWT and stores its claims on the context.
func authMiddleware(secret string, revoked *auth.Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			jsonError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		claims, err := auth.ValidateToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			jsonError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if revoked != nil && revoked.IsRevoked(claims.ID) {
			jsonError(c, http.StatusUnauthorized, "token has been revoked")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// requireRole rejects users below the minimum role.
func requireRole(minimum string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		if claims == nil {
			jsonError(c, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !model.RoleAtLeast(claims.Role, minimum) {
			jsonError(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

// getClaims retrieves the JWT claims from the context.
func getClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// requestLogger logs HTTP requests with method, path, status and duration.
func requestLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start).Round(time.Millisecond)),
			zap.String("client_ip", c.ClientIP()),
		}
		if claims := getClaims(c); claims != nil {
			fields = append(fields, zap.String("user", claims.Username))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			l.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("http request", fields...)
		default:
			l.Info("http request", fields...)
		}
	}
}

// recovery turns a handler panic into a logged 500.
func recovery(l *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		l.Error("handler panicked",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", err),
		)
		jsonError(c, http.StatusInternalServerError, "internal error")
	})
}
