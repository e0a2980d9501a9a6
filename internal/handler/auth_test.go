package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

func TestLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemoryStorage()
	users := service.NewUserService(store)
	_, err := users.Create(&model.CreateUserRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "pass123",
	})
	require.NoError(t, err)

	authenticator := auth.NewAuthenticator(store, "test-secret", time.Hour)
	router := gin.New()
	router.POST("/api/auth/login", NewAuthHandler(authenticator).Login)

	// 缺少字段
	w := postJSON(router, "/api/auth/login", `{"emailOrPhone":"zhangsan@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 密码错误
	w = postJSON(router, "/api/auth/login", `{"emailOrPhone":"zhangsan@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "邮箱/手机或密码错误")

	// 成功登录，邮箱前后空白被容忍
	w = postJSON(router, "/api/auth/login", `{"emailOrPhone":"  zhangsan@example.com  ","password":"pass123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "张三", resp.User.Name)
	// 响应不包含密码散列
	assert.NotContains(t, w.Body.String(), "passwordHash")
}
