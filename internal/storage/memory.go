package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/cobrayao-blip/mediation/internal/model"
)

type MemoryStorage struct {
	mu         sync.RWMutex
	users      map[string]*model.User
	scenarios  map[string]*model.Scenario
	skills     map[string]*model.Skill
	sessions   map[string]*model.PracticeSession
	comments   map[string][]*model.MentorComment
	llmConfigs map[string]*model.LLMConfig
	settings   map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:      make(map[string]*model.User),
		scenarios:  make(map[string]*model.Scenario),
		skills:     make(map[string]*model.Skill),
		sessions:   make(map[string]*model.PracticeSession),
		comments:   make(map[string][]*model.MentorComment),
		llmConfigs: make(map[string]*model.LLMConfig),
		settings:   make(map[string]string),
	}
}

func (m *MemoryStorage) Init() error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) CreateUser(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.Email != "" {
		for _, u := range m.users {
			if u.Email == user.Email {
				return ErrDuplicateEmail
			}
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MemoryStorage) GetUser(id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (m *MemoryStorage) GetUserByEmailOrPhone(value string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if (u.Email != "" && u.Email == value) || (u.Phone != "" && u.Phone == value) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryStorage) UpdateUser(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return ErrUserNotFound
	}
	if user.Email != "" {
		for id, u := range m.users {
			if id != user.ID && u.Email == user.Email {
				return ErrDuplicateEmail
			}
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MemoryStorage) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[id]; !exists {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryStorage) ListUsers(filter UserFilter) ([]*model.User, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		if filter.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Department != "" && !strings.Contains(strings.ToLower(u.Department), strings.ToLower(filter.Department)) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []*model.User{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MemoryStorage) CountUsers() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

func (m *MemoryStorage) CreateScenario(s *model.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[s.ID] = s
	return nil
}

func (m *MemoryStorage) GetScenario(id string) (*model.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.scenarios[id]
	if !exists {
		return nil, ErrScenarioNotFound
	}
	return s, nil
}

func (m *MemoryStorage) UpdateScenario(s *model.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.scenarios[s.ID]; !exists {
		return ErrScenarioNotFound
	}
	m.scenarios[s.ID] = s
	return nil
}

func (m *MemoryStorage) DeleteScenario(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.scenarios[id]; !exists {
		return ErrScenarioNotFound
	}
	delete(m.scenarios, id)
	return nil
}

func (m *MemoryStorage) ListScenarios(enabledOnly bool) ([]*model.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*model.Scenario, 0, len(m.scenarios))
	for _, s := range m.scenarios {
		if enabledOnly && !s.Enabled {
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (m *MemoryStorage) CreateSkill(s *model.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[s.ID] = s
	return nil
}

func (m *MemoryStorage) GetSkill(id string) (*model.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.skills[id]
	if !exists {
		return nil, ErrSkillNotFound
	}
	return s, nil
}

func (m *MemoryStorage) UpdateSkill(s *model.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.skills[s.ID]; !exists {
		return ErrSkillNotFound
	}
	m.skills[s.ID] = s
	return nil
}

func (m *MemoryStorage) DeleteSkill(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.skills[id]; !exists {
		return ErrSkillNotFound
	}
	delete(m.skills, id)
	return nil
}

func (m *MemoryStorage) ListSkills(enabledOnly bool) ([]*model.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*model.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		if enabledOnly && !s.Enabled {
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (m *MemoryStorage) CreatePracticeSession(s *model.PracticeSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStorage) GetPracticeSession(id string) (*model.PracticeSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryStorage) UpdatePracticeSession(s *model.PracticeSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; !exists {
		return ErrSessionNotFound
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStorage) ListPracticeSessions(userID string, limit int) ([]*model.PracticeSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*model.PracticeSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		if userID != "" && s.UserID != userID {
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryStorage) AddMentorComment(c *model.MentorComment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[c.SessionID]; !exists {
		return ErrSessionNotFound
	}
	m.comments[c.SessionID] = append(m.comments[c.SessionID], c)
	return nil
}

func (m *MemoryStorage) ListMentorComments(sessionID string) ([]*model.MentorComment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := make([]*model.MentorComment, len(m.comments[sessionID]))
	copy(comments, m.comments[sessionID])
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MemoryStorage) GetLLMConfig(provider string) (*model.LLMConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, exists := m.llmConfigs[provider]
	if !exists {
		return nil, nil
	}
	clone := *cfg
	return &clone, nil
}

func (m *MemoryStorage) UpsertLLMConfig(cfg *model.LLMConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *cfg
	m.llmConfigs[cfg.Provider] = &clone
	return nil
}

func (m *MemoryStorage) GetSetting(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *MemoryStorage) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}
