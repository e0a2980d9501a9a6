package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/llm"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/internal/storage"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

type ScenarioHandler struct {
	scenarios *service.ScenarioService
	llm       *llm.Service
}

func NewScenarioHandler(scenarios *service.ScenarioService, llmService *llm.Service) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios, llm: llmService}
}

// List 大厅只读启用列表，?enabled=false 时返回全部（管理端）
func (h *ScenarioHandler) List(c *gin.Context) {
	enabledOnly := c.Query("enabled") != "false"
	list, err := h.scenarios.List(enabledOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取案例列表失败"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ScenarioHandler) Get(c *gin.Context) {
	s, err := h.scenarios.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrScenarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "案例不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取案例失败"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ScenarioHandler) Create(c *gin.Context) {
	var req model.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.Category == "" || req.Description == "" ||
		req.DisputePoint == "" || req.PartyA == nil || req.PartyB == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段：title, category, description, disputePoint, partyA, partyB"})
		return
	}
	s, err := h.scenarios.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建案例失败"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ScenarioHandler) Update(c *gin.Context) {
	var req model.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.scenarios.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, storage.ErrScenarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "案例不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新案例失败"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ScenarioHandler) Delete(c *gin.Context) {
	if err := h.scenarios.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrScenarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "案例不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除案例失败"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Generate AI 根据一句话描述生成案例草稿（仅管理员）
func (h *ScenarioHandler) Generate(c *gin.Context) {
	var req model.GenerateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请提供案例描述"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	modelName, err := h.llm.ResolveModel(provider, req.Model)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "案例生成失败，请检查LLM配置"})
		return
	}
	draft, err := h.llm.GenerateScenario(c.Request.Context(), provider, modelName, req.Description)
	if err != nil {
		logger.Errorf("案例生成失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draft)
}
