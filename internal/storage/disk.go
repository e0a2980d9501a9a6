package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/pkg/logger"
)

// DiskStorage 在内存实现之上按集合落盘：每次写操作后把对应集合
// 整体序列化为 JSON 文件，写临时文件后原子重命名。
// 数据量是培训场景级别的，整文件重写比增量日志简单得多也够用。
type DiskStorage struct {
	dataDir string
	mem     *MemoryStorage
	saveMu  sync.Mutex
}

const (
	fileUsers     = "users.json"
	fileScenarios = "scenarios.json"
	fileSkills    = "skills.json"
	fileSessions  = "practice_sessions.json"
	fileComments  = "mentor_comments.json"
	fileLLM       = "llm_configs.json"
	fileSettings  = "settings.json"
)

func NewDiskStorage(dataDir string) *DiskStorage {
	return &DiskStorage{
		dataDir: dataDir,
		mem:     NewMemoryStorage(),
	}
}

func (d *DiskStorage) Init() error {
	if err := os.MkdirAll(d.dataDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	if err := loadCollection(d.path(fileUsers), &d.mem.users); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if err := loadCollection(d.path(fileScenarios), &d.mem.scenarios); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if err := loadCollection(d.path(fileSkills), &d.mem.skills); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if err := loadCollection(d.path(fileSessions), &d.mem.sessions); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if err := loadCollection(d.path(fileComments), &d.mem.comments); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if err := loadCollection(d.path(fileLLM), &d.mem.llmConfigs); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if err := loadCollection(d.path(fileSettings), &d.mem.settings); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	logger.Infof("Disk storage initialized at %s", d.dataDir)
	return nil
}

func (d *DiskStorage) Close() error {
	return nil
}

func (d *DiskStorage) path(name string) string {
	return filepath.Join(d.dataDir, name)
}

// loadCollection 目标文件不存在时保持零值集合
func loadCollection(path string, target any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (d *DiskStorage) save(name string, value any) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	path := d.path(name)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

func (d *DiskStorage) saveUsers() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileUsers, d.mem.users)
}

func (d *DiskStorage) saveScenarios() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileScenarios, d.mem.scenarios)
}

func (d *DiskStorage) saveSkills() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileSkills, d.mem.skills)
}

func (d *DiskStorage) saveSessions() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileSessions, d.mem.sessions)
}

func (d *DiskStorage) saveComments() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileComments, d.mem.comments)
}

func (d *DiskStorage) saveLLMConfigs() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileLLM, d.mem.llmConfigs)
}

func (d *DiskStorage) saveSettings() error {
	d.mem.mu.RLock()
	defer d.mem.mu.RUnlock()
	return d.save(fileSettings, d.mem.settings)
}

func (d *DiskStorage) CreateUser(user *model.User) error {
	if err := d.mem.CreateUser(user); err != nil {
		return err
	}
	return d.saveUsers()
}

func (d *DiskStorage) GetUser(id string) (*model.User, error) {
	return d.mem.GetUser(id)
}

func (d *DiskStorage) GetUserByEmailOrPhone(value string) (*model.User, error) {
	return d.mem.GetUserByEmailOrPhone(value)
}

func (d *DiskStorage) UpdateUser(user *model.User) error {
	if err := d.mem.UpdateUser(user); err != nil {
		return err
	}
	return d.saveUsers()
}

func (d *DiskStorage) DeleteUser(id string) error {
	if err := d.mem.DeleteUser(id); err != nil {
		return err
	}
	return d.saveUsers()
}

func (d *DiskStorage) ListUsers(filter UserFilter) ([]*model.User, int, error) {
	return d.mem.ListUsers(filter)
}

func (d *DiskStorage) CountUsers() (int, error) {
	return d.mem.CountUsers()
}

func (d *DiskStorage) CreateScenario(s *model.Scenario) error {
	if err := d.mem.CreateScenario(s); err != nil {
		return err
	}
	return d.saveScenarios()
}

func (d *DiskStorage) GetScenario(id string) (*model.Scenario, error) {
	return d.mem.GetScenario(id)
}

func (d *DiskStorage) UpdateScenario(s *model.Scenario) error {
	if err := d.mem.UpdateScenario(s); err != nil {
		return err
	}
	return d.saveScenarios()
}

func (d *DiskStorage) DeleteScenario(id string) error {
	if err := d.mem.DeleteScenario(id); err != nil {
		return err
	}
	return d.saveScenarios()
}

func (d *DiskStorage) ListScenarios(enabledOnly bool) ([]*model.Scenario, error) {
	return d.mem.ListScenarios(enabledOnly)
}

func (d *DiskStorage) CreateSkill(s *model.Skill) error {
	if err := d.mem.CreateSkill(s); err != nil {
		return err
	}
	return d.saveSkills()
}

func (d *DiskStorage) GetSkill(id string) (*model.Skill, error) {
	return d.mem.GetSkill(id)
}

func (d *DiskStorage) UpdateSkill(s *model.Skill) error {
	if err := d.mem.UpdateSkill(s); err != nil {
		return err
	}
	return d.saveSkills()
}

func (d *DiskStorage) DeleteSkill(id string) error {
	if err := d.mem.DeleteSkill(id); err != nil {
		return err
	}
	return d.saveSkills()
}

func (d *DiskStorage) ListSkills(enabledOnly bool) ([]*model.Skill, error) {
	return d.mem.ListSkills(enabledOnly)
}

func (d *DiskStorage) CreatePracticeSession(s *model.PracticeSession) error {
	if err := d.mem.CreatePracticeSession(s); err != nil {
		return err
	}
	return d.saveSessions()
}

func (d *DiskStorage) GetPracticeSession(id string) (*model.PracticeSession, error) {
	return d.mem.GetPracticeSession(id)
}

func (d *DiskStorage) UpdatePracticeSession(s *model.PracticeSession) error {
	if err := d.mem.UpdatePracticeSession(s); err != nil {
		return err
	}
	return d.saveSessions()
}

func (d *DiskStorage) ListPracticeSessions(userID string, limit int) ([]*model.PracticeSession, error) {
	return d.mem.ListPracticeSessions(userID, limit)
}

func (d *DiskStorage) AddMentorComment(c *model.MentorComment) error {
	if err := d.mem.AddMentorComment(c); err != nil {
		return err
	}
	return d.saveComments()
}

func (d *DiskStorage) ListMentorComments(sessionID string) ([]*model.MentorComment, error) {
	return d.mem.ListMentorComments(sessionID)
}

func (d *DiskStorage) GetLLMConfig(provider string) (*model.LLMConfig, error) {
	return d.mem.GetLLMConfig(provider)
}

func (d *DiskStorage) UpsertLLMConfig(cfg *model.LLMConfig) error {
	if err := d.mem.UpsertLLMConfig(cfg); err != nil {
		return err
	}
	return d.saveLLMConfigs()
}

func (d *DiskStorage) GetSetting(key string) (string, error) {
	return d.mem.GetSetting(key)
}

func (d *DiskStorage) SetSetting(key, value string) error {
	if err := d.mem.SetSetting(key, value); err != nil {
		return err
	}
	return d.saveSettings()
}
