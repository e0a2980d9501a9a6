package storage

import (
	"github.com/cobrayao-blip/mediation/internal/model"
)

// UserFilter 用户列表的筛选与分页条件
type UserFilter struct {
	Name       string
	Department string
	Role       string
	Page       int
	PageSize   int
}

type Storage interface {
	// 用户
	CreateUser(user *model.User) error
	GetUser(id string) (*model.User, error)
	GetUserByEmailOrPhone(value string) (*model.User, error)
	UpdateUser(user *model.User) error
	DeleteUser(id string) error
	ListUsers(filter UserFilter) ([]*model.User, int, error)
	CountUsers() (int, error)

	// 案例
	CreateScenario(s *model.Scenario) error
	GetScenario(id string) (*model.Scenario, error)
	UpdateScenario(s *model.Scenario) error
	DeleteScenario(id string) error
	ListScenarios(enabledOnly bool) ([]*model.Scenario, error)

	// 技巧手册
	CreateSkill(s *model.Skill) error
	GetSkill(id string) (*model.Skill, error)
	UpdateSkill(s *model.Skill) error
	DeleteSkill(id string) error
	ListSkills(enabledOnly bool) ([]*model.Skill, error)

	// 练习记录与导师评语
	CreatePracticeSession(s *model.PracticeSession) error
	GetPracticeSession(id string) (*model.PracticeSession, error)
	UpdatePracticeSession(s *model.PracticeSession) error
	ListPracticeSessions(userID string, limit int) ([]*model.PracticeSession, error)
	AddMentorComment(c *model.MentorComment) error
	ListMentorComments(sessionID string) ([]*model.MentorComment, error)

	// 大模型配置：每个 provider 至多一条，GetLLMConfig 无记录时返回 (nil, nil)
	GetLLMConfig(provider string) (*model.LLMConfig, error)
	UpsertLLMConfig(cfg *model.LLMConfig) error

	// 应用设置（键值对），GetSetting 无记录时返回 ("", nil)
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error

	// 存储管理
	Init() error
	Close() error
}
