package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

type PracticeHandler struct {
	practice *service.PracticeService
}

func NewPracticeHandler(practice *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practice: practice}
}

// ListAll 全部练习记录（仅管理员），最多 100 条
func (h *PracticeHandler) ListAll(c *gin.Context) {
	sessions, err := h.practice.List("", 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取练习记录失败"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Get 单条练习记录，只有管理员或本人可以查看
func (h *PracticeHandler) Get(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	session, err := h.practice.Get(c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "练习记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取练习记录失败"})
		return
	}
	if claims.Role != model.RoleAdmin && claims.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "无权查看该练习记录"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// AddComment 导师评语（仅管理员）
func (h *PracticeHandler) AddComment(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	var req model.MentorCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请填写评语内容"})
		return
	}
	comment, err := h.practice.AddComment(c.Param("sessionId"), claims.UserID, req.Comment)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "练习记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "添加评语失败"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Comments 某条练习记录的全部评语
func (h *PracticeHandler) Comments(c *gin.Context) {
	comments, err := h.practice.Comments(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取评语失败"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Observe 观摩模式：管理员或导师查看学员对话并登记为观摩者
func (h *PracticeHandler) Observe(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	if claims.Role != model.RoleAdmin && claims.Role != model.RoleMentor {
		c.JSON(http.StatusForbidden, gin.H{"error": "仅管理员和导师可以观摩"})
		return
	}
	session, err := h.practice.Observe(c.Param("sessionId"), claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "练习记录不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "观摩失败"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// UserReport 学员数据报表，本人或管理员/导师可查看
func (h *PracticeHandler) UserReport(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	userID := c.Param("userId")
	if claims.UserID != userID && claims.Role != model.RoleAdmin && claims.Role != model.RoleMentor {
		c.JSON(http.StatusForbidden, gin.H{"error": "无权查看该用户数据"})
		return
	}
	report, err := h.practice.UserReport(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取数据报表失败"})
		return
	}
	c.JSON(http.StatusOK, report)
}
