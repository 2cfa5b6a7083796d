package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/service"
	"github.com/Sreekanth-25/Project-Tracker-Application/pkg/metrics"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.IncrementAuthAttempt("register", "failed")
		h.logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}

	metrics.IncrementAuthAttempt("register", "success")
	h.logger.Info("User registered", zap.String("user_id", u.ID))
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.IncrementAuthAttempt("login", "failed")
		respondError(c, err)
		return
	}

	metrics.IncrementAuthAttempt("login", "success")
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	})
}

// Me handles GET /auth/me. The auth middleware already resolved the user.
func (h *AuthHandler) Me(c *gin.Context) {
	u, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, u.(*model.User))
}
