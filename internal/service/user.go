package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cobrayao-blip/mediation/internal/auth"
	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

var ErrWrongPassword = errors.New("当前密码错误")

type UserService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Get(id string) (*model.User, error) {
	return s.store.GetUser(id)
}

func (s *UserService) List(filter storage.UserFilter) ([]*model.User, int, error) {
	return s.store.ListUsers(filter)
}

// normalizeRole 未知角色一律归为 employee
func normalizeRole(role string) string {
	switch role {
	case model.RoleAdmin, model.RoleMentor:
		return role
	default:
		return model.RoleEmployee
	}
}

func (s *UserService) Create(req *model.CreateUserRequest) (*model.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Department:   req.Department,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         normalizeRole(req.Role),
		Status:       model.StatusActive,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(id string, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, err
	}
	updated := *user
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Department != nil {
		updated.Department = *req.Department
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Role != nil {
		updated.Role = normalizeRole(*req.Role)
	}
	if req.Status != nil {
		if *req.Status == model.StatusDisabled {
			updated.Status = model.StatusDisabled
		} else {
			updated.Status = model.StatusActive
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}
	if err := s.store.UpdateUser(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *UserService) Delete(id string) error {
	return s.store.DeleteUser(id)
}

// UpdateProfile 本人可改姓名、部门、邮箱、手机，返回是否有字段被更新
func (s *UserService) UpdateProfile(id string, req *model.UpdateProfileRequest) (*model.User, bool, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, false, err
	}
	updated := *user
	changed := false
	if req.Name != nil {
		updated.Name = *req.Name
		changed = true
	}
	if req.Department != nil {
		updated.Department = *req.Department
		changed = true
	}
	if req.Email != nil {
		updated.Email = *req.Email
		changed = true
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
		changed = true
	}
	if !changed {
		return user, false, nil
	}
	if err := s.store.UpdateUser(&updated); err != nil {
		return nil, false, err
	}
	return &updated, true, nil
}

func (s *UserService) ChangePassword(id, currentPassword, newPassword string) error {
	user, err := s.store.GetUser(id)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	updated := *user
	updated.PasswordHash = hash
	return s.store.UpdateUser(&updated)
}

// EnsureDefaultAdmin 首次启动且没有任何用户时创建默认管理员。
// 生产环境必须通过环境变量提供密码，开发环境兜底 admin123。
func (s *UserService) EnsureDefaultAdmin(email, name, password string) error {
	count, err := s.store.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("APP_ENV") == "production" {
			return fmt.Errorf("生产环境必须设置环境变量 ADMIN_DEFAULT_PASSWORD（默认管理员密码）")
		}
		password = "admin123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(admin); err != nil {
		return err
	}
	logger.Infof("已创建默认管理员：%s（请首次登录后到「用户中心」修改密码）", email)
	return nil
}
