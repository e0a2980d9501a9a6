package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

type AuthHandler struct {
	auth *auth.Authenticator
}

func NewAuthHandler(a *auth.Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

// Login 邮箱/手机 + 密码登录，返回 JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请填写邮箱/手机和密码"})
		return
	}

	token, user, err := h.auth.Login(strings.TrimSpace(req.EmailOrPhone), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱/手机或密码错误"})
			return
		}
		logger.Errorf("登录失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  user.View(),
	})
}
