// Package api exposes the reporting service over HTTP.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/auth"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/report"
)

// Config configures the HTTP surface.
type Config struct {
	JWTSecret string
	// ExportPerMinute limits report downloads per user. Zero disables
	// the limit.
	ExportPerMinute int
}

// Server holds the handler dependencies.
type Server struct {
	reports  *report.Service
	accounts *auth.Accounts
	revoked  *auth.Revocations
	secret   string
	exports  *rateLimiter
	l        *zap.Logger
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(cfg Config, reports *report.Service, accounts *auth.Accounts, l *zap.Logger) (*gin.Engine, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if l == nil {
		l = zap.NewNop()
	}

	s := &Server{
		reports:  reports,
		accounts: accounts,
		revoked:  auth.NewRevocations(),
		secret:   cfg.JWTSecret,
		l:        l,
	}
	if cfg.ExportPerMinute > 0 {
		s.exports = newRateLimiter(cfg.ExportPerMinute)
	}

	r := gin.New()
	r.Use(recovery(l), requestLogger(l))

	authMW := authMiddleware(s.secret, s.revoked)

	api := r.Group("/api")
	{
		// Public.
		api.POST("/auth/login", s.login)
		api.GET("/health", s.health)

		// Authenticated.
		api.POST("/auth/logout", authMW, s.logout)
		api.GET("/auth/me", authMW, s.me)

		api.GET("/stats", authMW, requireRole(model.RoleStaff), s.stats)
		api.GET("/reports/export", authMW, requireRole(model.RoleAdmin), rateLimit(s.exports), s.exportReport)
	}

	return r, nil
}
