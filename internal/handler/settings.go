package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/llm"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

type SettingsHandler struct {
	llm *llm.Service
}

func NewSettingsHandler(llmService *llm.Service) *SettingsHandler {
	return &SettingsHandler{llm: llmService}
}

// GetLLM 脱敏配置视图，附带默认模型选择
func (h *SettingsHandler) GetLLM(c *gin.Context) {
	providers, err := h.llm.PublicConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取大模型配置失败"})
		return
	}
	view := model.LLMSettingsView{Providers: providers}
	if p, modelName, ok, err := h.llm.DefaultLLM(); err == nil && ok {
		view.DefaultProvider = string(p)
		view.DefaultModel = modelName
	}
	c.JSON(http.StatusOK, view)
}

// SetLLM 保存连接配置，空字段表示不修改
func (h *SettingsHandler) SetLLM(c *gin.Context) {
	var req model.LLMSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider 必须为 qwen 或 deepseek"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.APIKey == "" && req.BaseURL == "" && req.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请填写 API Key、API Base 或模型名称至少一项"})
		return
	}
	err = h.llm.SaveConfig(provider, model.LLMConfig{
		APIKey:    req.APIKey,
		BaseURL:   req.BaseURL,
		ModelName: req.Model,
	})
	if err != nil {
		logger.Errorf("保存大模型配置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存大模型配置失败: " + err.Error()})
		return
	}
	providers, err := h.llm.PublicConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取大模型配置失败"})
		return
	}
	c.JSON(http.StatusOK, model.LLMSettingsView{Providers: providers})
}

// TestLLM 用临时参数测试连通性，不写回存储
func (h *SettingsHandler) TestLLM(c *gin.Context) {
	var req model.LLMTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider 必须为 qwen 或 deepseek"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	overrides := llm.Overrides{APIKey: req.APIKey, BaseURL: req.BaseURL}
	if err := h.llm.TestConnection(c.Request.Context(), provider, overrides, req.Model); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetDefaultLLM 查询当前设置的默认大模型
func (h *SettingsHandler) GetDefaultLLM(c *gin.Context) {
	p, modelName, ok, err := h.llm.DefaultLLM()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取默认大模型失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"provider": nil, "model": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": string(p), "model": modelName})
}

// SetDefaultLLM 设置默认大模型
func (h *SettingsHandler) SetDefaultLLM(c *gin.Context) {
	var req model.DefaultLLMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider 必须为 qwen 或 deepseek"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	modelName := strings.TrimSpace(req.Model)
	if modelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请提供 model 名称"})
		return
	}
	if err := h.llm.SetDefaultLLM(provider, modelName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "设置默认大模型失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": string(provider), "model": modelName})
}
