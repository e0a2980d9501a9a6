package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobrayao-blip/mediation/internal/model"
)

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("qwen")
	require.NoError(t, err)
	assert.Equal(t, ProviderQwen, p)

	p, err = ParseProvider("deepseek")
	require.NoError(t, err)
	assert.Equal(t, ProviderDeepSeek, p)

	_, err = ParseProvider("gpt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qwen 或 deepseek")

	_, err = ParseProvider("")
	require.Error(t, err)
}

// TestResolvePrecedence 覆盖参数 > 存储配置 > 环境变量 > 内置默认
func TestResolvePrecedence(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)

	t.Setenv("QWEN_API_KEY", "env-key")
	t.Setenv("QWEN_API_BASE", "https://env.example.com/v1")

	// 无存储配置时回落到环境变量
	ep, err := s.resolve(ProviderQwen, nil)
	require.NoError(t, err)
	assert.Equal(t, "env-key", ep.APIKey)
	assert.Equal(t, "https://env.example.com/v1", ep.BaseURL)

	// 存储配置优先于环境变量
	store.configs["qwen"] = &model.LLMConfig{
		Provider: "qwen",
		APIKey:   "stored-key",
		BaseURL:  "https://stored.example.com/v1",
	}
	ep, err = s.resolve(ProviderQwen, nil)
	require.NoError(t, err)
	assert.Equal(t, "stored-key", ep.APIKey)
	assert.Equal(t, "https://stored.example.com/v1", ep.BaseURL)

	// 覆盖参数优先于一切
	ep, err = s.resolve(ProviderQwen, &Overrides{APIKey: "override-key", BaseURL: "https://override.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "override-key", ep.APIKey)
	assert.Equal(t, "https://override.example.com", ep.BaseURL)
}

// TestResolveDefaultBaseURL 没有任何 baseUrl 来源时使用内置默认地址
func TestResolveDefaultBaseURL(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "env-key")
	t.Setenv("DEEPSEEK_API_BASE", "")

	s := NewService(newFakeStore())
	ep, err := s.resolve(ProviderDeepSeek, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.deepseek.com/v1", ep.BaseURL)
}

// TestResolveMissingKey apiKey 无解时返回配置错误，且不发起网络请求
func TestResolveMissingKey(t *testing.T) {
	t.Setenv("QWEN_API_KEY", "")

	s := NewService(newFakeStore())
	_, err := s.resolve(ProviderQwen, nil)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ProviderQwen, cfgErr.Provider)
	assert.Contains(t, cfgErr.Hint, "QWEN_API_KEY")

	// 连接测试路径给出不同的提示文案
	_, err = s.resolve(ProviderQwen, &Overrides{})
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "请填写 API Key 后再测试", cfgErr.Hint)
}

// TestSaveConfigMerge 空字段视为"不修改"，不会清空已有值
func TestSaveConfigMerge(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)

	require.NoError(t, s.SaveConfig(ProviderQwen, model.LLMConfig{
		APIKey:    "sk-first",
		BaseURL:   "https://a.example.com",
		ModelName: "qwen-plus",
	}))

	// 只更新模型名称，Key 和 Base 保持不变
	require.NoError(t, s.SaveConfig(ProviderQwen, model.LLMConfig{ModelName: "qwen-max"}))

	cfg := store.configs["qwen"]
	require.NotNil(t, cfg)
	assert.Equal(t, "sk-first", cfg.APIKey)
	assert.Equal(t, "https://a.example.com", cfg.BaseURL)
	assert.Equal(t, "qwen-max", cfg.ModelName)
}

func TestDefaultLLM(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)

	// 未设置
	_, _, ok, err := s.DefaultLLM()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetDefaultLLM(ProviderDeepSeek, "deepseek-chat"))
	p, modelName, ok, err := s.DefaultLLM()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ProviderDeepSeek, p)
	assert.Equal(t, "deepseek-chat", modelName)

	// 存储中的 provider 值非法时按未设置处理
	store.settings["default_llm_provider"] = "gpt"
	_, _, ok, err = s.DefaultLLM()
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestPublicConfig 视图只含脱敏 Key，绝不回显完整 Key
func TestPublicConfig(t *testing.T) {
	t.Setenv("QWEN_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")

	store := newFakeStore()
	store.configs["qwen"] = &model.LLMConfig{
		Provider:  "qwen",
		APIKey:    "sk-abcdef1234",
		ModelName: "qwen-max",
	}
	s := NewService(store)

	views, err := s.PublicConfig()
	require.NoError(t, err)
	require.Len(t, views, 2)

	qwen := views["qwen"]
	assert.True(t, qwen.HasAPIKey)
	require.NotNil(t, qwen.KeyMasked)
	assert.Equal(t, "****1234", *qwen.KeyMasked)
	assert.Equal(t, "qwen-max", qwen.Model)

	deepseek := views["deepseek"]
	assert.False(t, deepseek.HasAPIKey)
	assert.Nil(t, deepseek.KeyMasked)
	assert.Equal(t, "deepseek-chat", deepseek.Model)
	assert.Equal(t, "https://api.deepseek.com/v1", deepseek.BaseURL)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", maskKey(""))
	assert.Equal(t, "***", maskKey("abc"))
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "****6789", maskKey("sk-123456789"))
}

func TestResolveModel(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)

	// 无任何配置时用内置默认
	m, err := s.ResolveModel(ProviderQwen, "")
	require.NoError(t, err)
	assert.Equal(t, "qwen3-max-preview", m)

	store.configs["qwen"] = &model.LLMConfig{Provider: "qwen", ModelName: "qwen-turbo"}
	m, err = s.ResolveModel(ProviderQwen, "")
	require.NoError(t, err)
	assert.Equal(t, "qwen-turbo", m)

	// 调用方指定优先
	m, err = s.ResolveModel(ProviderQwen, "qwen-max")
	require.NoError(t, err)
	assert.Equal(t, "qwen-max", m)
}
