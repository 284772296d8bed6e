package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// login handles POST /api/auth/login.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		jsonError(c, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := s.accounts.Authenticate(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.l.Warn("login failed", zap.String("username", req.Username), zap.String("remote", c.ClientIP()))
		jsonError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(s.secret, user.Username, user.Role)
	if err != nil {
		s.l.Error("generating token", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.l.Info("user logged in", zap.String("user", user.Username), zap.String("role", user.Role))
	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(auth.TokenExpiry).UTC(),
	})
}

// logout handles POST /api/auth/logout.
func (s *Server) logout(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil {
		jsonError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	if claims.ExpiresAt != nil {
		s.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	}
	s.l.Info("user logged out", zap.String("user", claims.Username))
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// me handles GET /api/auth/me.
func (s *Server) me(c *gin.Context) {
	claims := getClaims(c)
	c.JSON(http.StatusOK, gin.H{"username": claims.Username, "role": claims.Role})
}
