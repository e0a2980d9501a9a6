package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/model"
)

const claimsContextKey = "authClaims"

// tokenFromRequest 优先取 Authorization: Bearer <token>，其次取 token cookie
func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

// RequireAuth 要求登录，校验通过后把 Claims 写入上下文
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录或 Token 已失效"})
			return
		}
		claims := a.VerifyToken(token)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth 有 Token 则校验并写入上下文，无 Token 不拦截，
// 用于评估等可匿名调用的接口
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims := a.VerifyToken(token); claims != nil {
				c.Set(claimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// AdminOnly 仅管理员可访问，必须挂在 RequireAuth 之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}
		c.Next()
	}
}

// CurrentClaims 从上下文取当前用户，未登录返回 nil
func CurrentClaims(c *gin.Context) *Claims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*Claims)
	return claims
}
