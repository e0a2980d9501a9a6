package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

type SkillHandler struct {
	skills *service.SkillService
}

func NewSkillHandler(skills *service.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

func (h *SkillHandler) List(c *gin.Context) {
	enabledOnly := c.Query("enabled") != "false"
	list, err := h.skills.List(enabledOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取技巧列表失败"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SkillHandler) Get(c *gin.Context) {
	s, err := h.skills.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "技巧不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取技巧失败"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req model.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Category == "" || req.Description == "" || req.HowToUse == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段：name, category, description, howToUse"})
		return
	}
	s, err := h.skills.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建技巧失败"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SkillHandler) Update(c *gin.Context) {
	var req model.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.skills.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, storage.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "技巧不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新技巧失败"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	if err := h.skills.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "技巧不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除技巧失败"})
		return
	}
	c.Status(http.StatusNoContent)
}
