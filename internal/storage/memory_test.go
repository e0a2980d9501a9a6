package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobrayao-blip/mediation/internal/model"
)

func newTestUser(id, name, email string) *model.User {
	return &model.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      model.RoleEmployee,
		Status:    model.StatusActive,
		CreatedAt: time.Now(),
	}
}

func TestMemoryUserCRUD(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Init())

	user := newTestUser("u1", "张三", "zhangsan@example.com")
	require.NoError(t, m.CreateUser(user))

	got, err := m.GetUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "张三", got.Name)

	_, err = m.GetUser("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err = m.GetUserByEmailOrPhone("zhangsan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	updated := *user
	updated.Name = "张三丰"
	require.NoError(t, m.UpdateUser(&updated))
	got, _ = m.GetUser("u1")
	assert.Equal(t, "张三丰", got.Name)

	require.NoError(t, m.DeleteUser("u1"))
	assert.ErrorIs(t, m.DeleteUser("u1"), ErrUserNotFound)
}

func TestMemoryDuplicateEmail(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.CreateUser(newTestUser("u1", "张三", "same@example.com")))

	err := m.CreateUser(newTestUser("u2", "李四", "same@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// 邮箱为空的用户可以共存
	require.NoError(t, m.CreateUser(newTestUser("u3", "王五", "")))
	require.NoError(t, m.CreateUser(newTestUser("u4", "赵六", "")))

	// 更新改成他人邮箱同样拒绝
	require.NoError(t, m.CreateUser(newTestUser("u5", "钱七", "other@example.com")))
	u5, _ := m.GetUser("u5")
	changed := *u5
	changed.Email = "same@example.com"
	assert.ErrorIs(t, m.UpdateUser(&changed), ErrDuplicateEmail)
}

func TestMemoryListUsersFilterAndPaging(t *testing.T) {
	m := NewMemoryStorage()
	base := time.Now()
	for i, name := range []string{"张三", "张三丰", "李四"} {
		u := newTestUser("u"+string(rune('1'+i)), name, "")
		u.Department = "调解一部"
		u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, m.CreateUser(u))
	}

	list, total, err := m.ListUsers(UserFilter{Name: "张三"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	// 创建时间倒序
	assert.Equal(t, "张三丰", list[0].Name)

	list, total, err = m.ListUsers(UserFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, list, 1)

	// 超出范围的页码返回空列表
	list, total, err = m.ListUsers(UserFilter{Page: 99, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, list)
}

func TestMemoryScenarioOrdering(t *testing.T) {
	m := NewMemoryStorage()
	now := time.Now()
	require.NoError(t, m.CreateScenario(&model.Scenario{ID: "s1", Title: "甲", SortOrder: 2, Enabled: true, CreatedAt: now}))
	require.NoError(t, m.CreateScenario(&model.Scenario{ID: "s2", Title: "乙", SortOrder: 1, Enabled: true, CreatedAt: now}))
	require.NoError(t, m.CreateScenario(&model.Scenario{ID: "s3", Title: "丙", SortOrder: 1, Enabled: false, CreatedAt: now.Add(time.Minute)}))

	list, err := m.ListScenarios(false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// sortOrder 升序，同序按创建时间倒序
	assert.Equal(t, "s3", list[0].ID)
	assert.Equal(t, "s2", list[1].ID)
	assert.Equal(t, "s1", list[2].ID)

	enabled, err := m.ListScenarios(true)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}

func TestMemoryPracticeSessions(t *testing.T) {
	m := NewMemoryStorage()
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, m.CreatePracticeSession(&model.PracticeSession{
			ID:        "p" + string(rune('1'+i)),
			UserID:    "u1",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, m.CreatePracticeSession(&model.PracticeSession{ID: "px", UserID: "u2", CreatedAt: now}))

	list, err := m.ListPracticeSessions("u1", 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "p3", list[0].ID)

	list, err = m.ListPracticeSessions("u1", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := m.ListPracticeSessions("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryMentorComments(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.CreatePracticeSession(&model.PracticeSession{ID: "p1", UserID: "u1", CreatedAt: time.Now()}))

	// 不存在的 session 不能挂评语
	err := m.AddMentorComment(&model.MentorComment{ID: "c0", SessionID: "missing"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	now := time.Now()
	require.NoError(t, m.AddMentorComment(&model.MentorComment{ID: "c1", SessionID: "p1", Comment: "先到的", CreatedAt: now}))
	require.NoError(t, m.AddMentorComment(&model.MentorComment{ID: "c2", SessionID: "p1", Comment: "后到的", CreatedAt: now.Add(time.Minute)}))

	comments, err := m.ListMentorComments("p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "后到的", comments[0].Comment)
}

func TestMemoryLLMConfig(t *testing.T) {
	m := NewMemoryStorage()

	// 无记录时返回 (nil, nil)
	cfg, err := m.GetLLMConfig("qwen")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, m.UpsertLLMConfig(&model.LLMConfig{Provider: "qwen", APIKey: "sk-1"}))
	cfg, err = m.GetLLMConfig("qwen")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "sk-1", cfg.APIKey)

	// 读出的是副本，改动不影响存储
	cfg.APIKey = "tampered"
	again, _ := m.GetLLMConfig("qwen")
	assert.Equal(t, "sk-1", again.APIKey)

	// 按 provider 覆盖写
	require.NoError(t, m.UpsertLLMConfig(&model.LLMConfig{Provider: "qwen", APIKey: "sk-2"}))
	again, _ = m.GetLLMConfig("qwen")
	assert.Equal(t, "sk-2", again.APIKey)
}

func TestMemorySettings(t *testing.T) {
	m := NewMemoryStorage()

	v, err := m.GetSetting("missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, m.SetSetting("default_llm_provider", "qwen"))
	v, err = m.GetSetting("default_llm_provider")
	require.NoError(t, err)
	assert.Equal(t, "qwen", v)
}
