package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/llm"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

// LLMHandler 大模型代理：Key 存后端，前端只传 provider + model
type LLMHandler struct {
	llm      *llm.Service
	practice *service.PracticeService
}

func NewLLMHandler(llmService *llm.Service, practice *service.PracticeService) *LLMHandler {
	return &LLMHandler{llm: llmService, practice: practice}
}

// Chat 模拟对话一轮
func (h *LLMHandler) Chat(c *gin.Context) {
	var req model.ChatTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider, model, scenario, history or userInput"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	turn, err := h.llm.GenerateTurn(
		c.Request.Context(), provider, req.Model,
		req.SystemInstruction, req.Scenario, req.History, req.UserInput,
	)
	if err != nil {
		logger.Errorf("模拟对话失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, turn)
}

// GenerateOpening 生成个性化开场对话
func (h *LLMHandler) GenerateOpening(c *gin.Context) {
	var req model.GenerateOpeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider, model or scenario"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opening, err := h.llm.GenerateOpening(c.Request.Context(), provider, req.Model, req.Scenario)
	if err != nil {
		logger.Errorf("开场对话生成失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, opening)
}

// Evaluate 结案评估。已登录且带 scenarioId 时顺带保存练习记录，
// 保存失败只记日志，不阻断评估结果返回。
func (h *LLMHandler) Evaluate(c *gin.Context) {
	var req model.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider, model, scenarioTitle or chatHistory"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.llm.Evaluate(c.Request.Context(), provider, req.Model, req.ScenarioTitle, req.ChatHistory)
	if err != nil {
		logger.Errorf("评估失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if claims := auth.CurrentClaims(c); claims != nil && req.ScenarioID != "" {
		assessment := result
		if _, err := h.practice.SaveSession(claims.UserID, req.ScenarioID, req.ChatHistory, &assessment); err != nil {
			logger.Errorf("保存练习记录失败: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// GenerateDocument 生成调解协议书草稿
func (h *LLMHandler) GenerateDocument(c *gin.Context) {
	var req model.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	document, err := h.llm.GenerateDocument(
		c.Request.Context(), provider, req.Model,
		req.ScenarioTitle, req.PartyA, req.PartyB, req.ChatHistory,
	)
	if err != nil {
		logger.Errorf("文书生成失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document})
}
