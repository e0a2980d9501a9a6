package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/service"
	"github.com/cobrayao-blip/mediation/internal/storage"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

type UserHandler struct {
	users    *service.UserService
	practice *service.PracticeService
}

func NewUserHandler(users *service.UserService, practice *service.PracticeService) *UserHandler {
	return &UserHandler{users: users, practice: practice}
}

// Me 当前用户信息
func (h *UserHandler) Me(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	user, err := h.users.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}
	c.JSON(http.StatusOK, user.View())
}

// UpdateMe 本人更新个人资料
func (h *UserHandler) UpdateMe(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, changed, err := h.users.UpdateProfile(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "邮箱已存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新失败"})
		return
	}
	if !changed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无有效字段可更新"})
		return
	}
	c.JSON(http.StatusOK, user.View())
}

// ChangePassword 本人修改密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "当前密码和新密码必填"})
		return
	}
	if err := h.users.ChangePassword(claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "当前密码错误"})
		case errors.Is(err, storage.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "修改密码失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MyPracticeSessions 当前用户的练习记录（用户中心用）
func (h *UserHandler) MyPracticeSessions(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	sessions, err := h.practice.List(claims.UserID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取练习记录失败"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// List 用户列表（仅管理员），支持姓名/部门/角色筛选与分页
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	filter := storage.UserFilter{
		Name:       c.Query("name"),
		Department: c.Query("department"),
		Role:       c.Query("role"),
		Page:       page,
		PageSize:   pageSize,
	}
	list, total, err := h.users.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户列表失败"})
		return
	}
	views := make([]model.UserView, 0, len(list))
	for _, u := range list {
		views = append(views, u.View())
	}
	c.JSON(http.StatusOK, model.UserListResponse{List: views, Total: total})
}

// Create 创建用户（仅管理员）
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "姓名和密码必填"})
		return
	}
	user, err := h.users.Create(&req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "邮箱已存在"})
			return
		}
		logger.Errorf("创建用户失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建用户失败"})
		return
	}
	c.JSON(http.StatusCreated, user.View())
}

// Update 更新用户（仅管理员）
func (h *UserHandler) Update(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Update(c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		case errors.Is(err, storage.ErrDuplicateEmail):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "邮箱已存在"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新用户失败"})
		}
		return
	}
	c.JSON(http.StatusOK, user.View())
}

// Delete 删除用户（仅管理员）
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除用户失败"})
		return
	}
	c.Status(http.StatusNoContent)
}
