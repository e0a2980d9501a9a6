package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobrayao-blip/mediation/internal/model"
)

// TestDiskPersistence 写入后重新打开同一目录，数据仍在
func TestDiskPersistence(t *testing.T) {
	dir := t.TempDir()

	d := NewDiskStorage(dir)
	require.NoError(t, d.Init())

	require.NoError(t, d.CreateUser(newTestUser("u1", "张三", "zhangsan@example.com")))
	require.NoError(t, d.CreateScenario(&model.Scenario{ID: "s1", Title: "漏水纠纷", Enabled: true, CreatedAt: time.Now()}))
	require.NoError(t, d.UpsertLLMConfig(&model.LLMConfig{Provider: "qwen", APIKey: "sk-persist"}))
	require.NoError(t, d.SetSetting("default_llm_provider", "qwen"))
	require.NoError(t, d.Close())

	// 目录里应出现对应的 JSON 文件
	_, err := os.Stat(filepath.Join(dir, "users.json"))
	require.NoError(t, err)

	reopened := NewDiskStorage(dir)
	require.NoError(t, reopened.Init())

	user, err := reopened.GetUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "张三", user.Name)

	scenario, err := reopened.GetScenario("s1")
	require.NoError(t, err)
	assert.Equal(t, "漏水纠纷", scenario.Title)

	cfg, err := reopened.GetLLMConfig("qwen")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "sk-persist", cfg.APIKey)

	v, err := reopened.GetSetting("default_llm_provider")
	require.NoError(t, err)
	assert.Equal(t, "qwen", v)
}

// TestDiskInitEmptyDir 空目录初始化成功且集合为空
func TestDiskInitEmptyDir(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	require.NoError(t, d.Init())

	count, err := d.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	cfg, err := d.GetLLMConfig("qwen")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

// TestDiskDeletePersists 删除同样落盘
func TestDiskDeletePersists(t *testing.T) {
	dir := t.TempDir()

	d := NewDiskStorage(dir)
	require.NoError(t, d.Init())
	require.NoError(t, d.CreateUser(newTestUser("u1", "张三", "")))
	require.NoError(t, d.DeleteUser("u1"))

	reopened := NewDiskStorage(dir)
	require.NoError(t, reopened.Init())
	_, err := reopened.GetUser("u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
